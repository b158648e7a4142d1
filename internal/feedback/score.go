package feedback

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinScore = 0
	MaxScore = 10
)

// ParseScore parses a 0-10 pain/fatigue score. A trailing "/10" is accepted,
// so "7", " 7 " and "7/10" all parse to 7.
func ParseScore(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.TrimSuffix(s, "/10")
	if s == "" {
		return 0, fmt.Errorf("empty score")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q (expected a whole number 0-10)", s)
	}
	if n < MinScore || n > MaxScore {
		return 0, fmt.Errorf("score %d out of range (expected 0-10)", n)
	}
	return n, nil
}

// FormatScore renders a score the way reports show it: "7 / 10".
func FormatScore(n int) string {
	return fmt.Sprintf("%d / %d", n, MaxScore)
}
