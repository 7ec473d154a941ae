package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Score is a league score expressed in tenths of a point. Scores carry exactly
// one fractional digit, so storing tenths as an integer keeps repeated
// addition exact.
type Score int64

var scorePattern = regexp.MustCompile(`^-?\d+(\.\d)?$`)

// ParseScore parses a decimal score with at most one fractional digit.
// Anything with more precision is rejected.
func ParseScore(s string) (Score, error) {
	s = strings.TrimSpace(s)
	if !scorePattern.MatchString(s) {
		return 0, fmt.Errorf("invalid score %q: must be a number with at most one decimal digit", s)
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart := s
	var frac int64
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		frac = int64(s[i+1] - '0')
	}
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	tenths := whole*10 + frac
	if neg {
		tenths = -tenths
	}
	return Score(tenths), nil
}

// ScoreFromFloat rounds to the nearest tenth. Only used when loading legacy
// records that accumulated binary floating point drift.
func ScoreFromFloat(f float64) Score {
	return Score(math.Round(f * 10))
}

func (s Score) Float64() float64 { return float64(s) / 10 }

// String formats the score with one decimal digit, e.g. "-5.5".
func (s Score) String() string {
	t := int64(s)
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	return fmt.Sprintf("%s%d.%d", sign, t/10, t%10)
}

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := ParseScore(raw)
	if err == nil {
		*s = parsed
		return nil
	}
	// Legacy stored values may look like 25.700000000000003. Repair them to
	// the nearest tenth instead of refusing to load.
	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil {
		return err
	}
	*s = ScoreFromFloat(f)
	return nil
}
