package hashutil

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{10}$`)

func TestGenerateIDFormat(t *testing.T) {
	id := GenerateID("protocol")
	assert.Regexp(t, hexPattern, id)
}

func TestGenerateIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID("feedback")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateIDFromSeedDeterministic(t *testing.T) {
	assert.Equal(t, GenerateIDFromSeed("fixed-seed"), GenerateIDFromSeed("fixed-seed"))
}

func TestGenerateIDFromSeedDifferentInputs(t *testing.T) {
	assert.NotEqual(t, GenerateIDFromSeed("seed-a"), GenerateIDFromSeed("seed-b"))
}
