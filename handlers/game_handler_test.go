package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hokkyo/riichi-league/models"
)

func TestParseScoreMap(t *testing.T) {
	scores, err := parseScoreMap(map[string]json.Number{
		"1": json.Number("350.0"),
		"2": json.Number("-5.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]models.Score{1: 3500, 2: -55}, scores)
}

func TestParseScoreMapNamesOffendingPlayer(t *testing.T) {
	_, err := parseScoreMap(map[string]json.Number{"7": json.Number("25.75")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player 7")
	assert.Contains(t, err.Error(), "25.75")
}

func TestParseScoreMapRejectsBadPlayerID(t *testing.T) {
	for _, id := range []string{"0", "-1", "abc", ""} {
		_, err := parseScoreMap(map[string]json.Number{id: json.Number("100")})
		assert.Error(t, err, "id %q", id)
	}
}

func TestParseRatingsMapNamesOffendingTable(t *testing.T) {
	_, err := parseRatingsMap(map[string]map[string]string{"zero": {"1": "1st"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero")

	_, err = parseRatingsMap(map[string]map[string]string{"1": {"nope": "1st"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestValidateRecordURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"https", "https://example.com/records/r1t1", false},
		{"http", "http://example.com/r", false},
		{"relative path", "/records/r1t1", true},
		{"missing scheme", "example.com/r", true},
		{"ftp scheme", "ftp://example.com/r", true},
		{"javascript scheme", "javascript:alert(1)", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRecordURL(tc.url)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
