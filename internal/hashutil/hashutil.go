package hashutil

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// IDLength is the number of hex characters in a generated record ID.
const IDLength = 10

// GenerateID creates a short hex ID for a record of the given kind
// ("protocol", "feedback", ...). The seed mixes the kind, the current
// timestamp and a few random bytes so IDs minted in the same nanosecond on
// different machines still differ.
func GenerateID(kind string) string {
	salt := make([]byte, 4)
	_, _ = rand.Read(salt)
	seed := fmt.Sprintf("%s\x00%d\x00%x", kind, time.Now().UnixNano(), salt)
	return GenerateIDFromSeed(seed)
}

// GenerateIDFromSeed creates a deterministic hex ID from a seed string.
func GenerateIDFromSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])[:IDLength]
}
