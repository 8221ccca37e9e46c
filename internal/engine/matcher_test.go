package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweebapp/sweebguard/models"
)

func testRequest(host, path string) models.Request {
	return models.Request{
		Protocol: "https",
		Host:     host,
		Path:     path,
	}
}

func TestMatcher_ExactHost(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name    string
		host    string
		pattern string
		want    bool
	}{
		{"same host", "evil.com", "evil.com", true},
		{"case insensitive", "EVIL.com", "evil.COM", true},
		{"subdomain does not match", "sub.evil.com", "evil.com", false},
		{"different host", "good.com", "evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := models.Rule{ID: 1, MatchType: models.MatchExactHost, Pattern: tt.pattern}

			matched, err := m.Matches(testRequest(tt.host, "/"), rule)

			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestMatcher_HostSuffix(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name    string
		host    string
		pattern string
		want    bool
	}{
		{"exact host", "evil.com", "evil.com", true},
		{"subdomain", "sub.evil.com", "evil.com", true},
		{"deep subdomain", "a.b.evil.com", "evil.com", true},
		{"dot boundary holds", "notevil.com", "evil.com", false},
		{"case insensitive", "SUB.Evil.COM", "evil.com", true},
		{"leading dot in pattern", "sub.evil.com", ".evil.com", true},
		{"unrelated host", "example.org", "evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := models.Rule{ID: 2, MatchType: models.MatchHostSuffix, Pattern: tt.pattern}

			matched, err := m.Matches(testRequest(tt.host, "/"), rule)

			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestMatcher_PathPrefix(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"prefix", "/downloads/setup.exe", "/downloads", true},
		{"whole path", "/downloads", "/downloads", true},
		{"not a prefix", "/files/downloads", "/downloads", false},
		{"case sensitive", "/Downloads/setup.exe", "/downloads", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := models.Rule{ID: 3, MatchType: models.MatchPathPrefix, Pattern: tt.pattern}

			matched, err := m.Matches(testRequest("example.com", tt.path), rule)

			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestMatcher_Contains(t *testing.T) {
	m := NewMatcher()
	rule := models.Rule{ID: 4, MatchType: models.MatchContains, Pattern: "tracker"}

	matched, err := m.Matches(testRequest("ads.example.com", "/tracker/pixel.gif"), rule)
	require.NoError(t, err)
	assert.True(t, matched)

	// Substring comparison is case-sensitive.
	matched, err = m.Matches(testRequest("ads.example.com", "/Tracker/pixel.gif"), rule)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestMatcher_Regex(t *testing.T) {
	m := NewMatcher()
	rule := models.Rule{ID: 5, MatchType: models.MatchRegex, Pattern: `.*\.exe$`}

	matched, err := m.Matches(testRequest("files.example.com", "/payload.exe"), rule)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = m.Matches(testRequest("files.example.com", "/payload.exe.txt"), rule)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestMatcher_Regex_InvalidPattern(t *testing.T) {
	m := NewMatcher()
	rule := models.Rule{ID: 6, MatchType: models.MatchRegex, Pattern: "("}

	_, err := m.Matches(testRequest("example.com", "/"), rule)

	require.Error(t, err)
}

func TestMatcher_EmptyPatternNeverMatches(t *testing.T) {
	m := NewMatcher()

	for _, mt := range []models.MatchType{
		models.MatchExactHost,
		models.MatchHostSuffix,
		models.MatchPathPrefix,
		models.MatchContains,
		models.MatchRegex,
	} {
		rule := models.Rule{ID: 7, MatchType: mt, Pattern: ""}

		matched, err := m.Matches(testRequest("example.com", "/"), rule)

		require.NoError(t, err)
		assert.False(t, matched, "match type %s must not match an empty pattern", mt)
	}
}

func TestMatcher_UnknownMatchType(t *testing.T) {
	m := NewMatcher()
	rule := models.Rule{ID: 8, MatchType: "glob", Pattern: "*"}

	matched, err := m.Matches(testRequest("example.com", "/"), rule)

	require.Error(t, err)
	assert.False(t, matched)
}
