package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		in   string
		want Score
	}{
		{"0", 0},
		{"0.0", 0},
		{"25.7", 257},
		{"-5.5", -55},
		{"-430", -4300},
		{" 12.3 ", 123},
	}
	for _, tc := range cases {
		got, err := ParseScore(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseScoreRejectsExtraPrecision(t *testing.T) {
	for _, in := range []string{"25.70", "25.700000000000003", "1e3", "abc", "1.", ".5", "--1", ""} {
		_, err := ParseScore(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "25.7", Score(257).String())
	assert.Equal(t, "-5.5", Score(-55).String())
	assert.Equal(t, "0.0", Score(0).String())
	assert.Equal(t, "-0.3", Score(-3).String())
}

func TestScoreJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Score(-55))
	require.NoError(t, err)
	assert.Equal(t, "-5.5", string(data))

	var s Score
	require.NoError(t, json.Unmarshal([]byte("-5.5"), &s))
	assert.Equal(t, Score(-55), s)
}

func TestScoreUnmarshalRepairsFloatDrift(t *testing.T) {
	var s Score
	require.NoError(t, json.Unmarshal([]byte("25.700000000000003"), &s))
	assert.Equal(t, Score(257), s)

	require.NoError(t, json.Unmarshal([]byte("-0.09999999999999998"), &s))
	assert.Equal(t, Score(-1), s)
}

func TestScoreAdditionStaysExact(t *testing.T) {
	// 0.1 added ten times is exactly 1.0 in tenths, where float64 drifts.
	var total Score
	tenth, err := ParseScore("0.1")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		total += tenth
	}
	assert.Equal(t, "1.0", total.String())
}

func TestScoreMapKeysMarshalAsStrings(t *testing.T) {
	data, err := json.Marshal(map[int]Score{7: -55})
	require.NoError(t, err)
	assert.JSONEq(t, `{"7": -5.5}`, string(data))
}
