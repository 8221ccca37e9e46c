package engine

import (
	"fmt"
	"strings"

	"github.com/sweebapp/sweebguard/models"
)

// Matcher decides whether a single rule matches a request. It is pure: no
// side effects, no I/O, safe for concurrent use.
//
// Host-based match types compare case-insensitively; path, substring, and
// regex types compare case-sensitively.
type Matcher struct {
	regexes *regexCache
}

// NewMatcher constructs a Matcher with an empty regex cache.
func NewMatcher() *Matcher {
	return &Matcher{regexes: newRegexCache()}
}

// Matches reports whether rule matches req according to the rule's match
// type. An empty pattern never matches, which prevents a half-configured
// rule from becoming an accidental match-all.
//
// Errors are possible only for rules that validation should have rejected:
// a regex pattern that fails to compile, or a match type this matcher does
// not know. When either happens anyway the caller must treat it as an
// evaluation defect and fail closed.
func (m *Matcher) Matches(req models.Request, rule models.Rule) (bool, error) {
	if rule.Pattern == "" {
		return false, nil
	}

	switch rule.MatchType {
	case models.MatchExactHost:
		return strings.EqualFold(req.Host, rule.Pattern), nil

	case models.MatchHostSuffix:
		return hostMatchesSuffix(req.Host, rule.Pattern), nil

	case models.MatchPathPrefix:
		return strings.HasPrefix(req.Path, rule.Pattern), nil

	case models.MatchContains:
		return strings.Contains(req.FullURL(), rule.Pattern), nil

	case models.MatchRegex:
		re, err := m.regexes.get(rule.ID, rule.Pattern)
		if err != nil {
			return false, err
		}
		return re.MatchString(req.FullURL()), nil
	}

	// Validation rejects unknown match types at creation, so a stored rule
	// reaching this point is defective and must fail closed, the same as a
	// non-compiling regex.
	return false, fmt.Errorf("unknown match type %q", rule.MatchType)
}

// hostMatchesSuffix reports whether host equals pattern or is a subdomain
// of it. The comparison is case-insensitive and dot-boundary aware, so
// pattern "evil.com" matches "evil.com" and "sub.evil.com" but not
// "notevil.com".
func hostMatchesSuffix(host, pattern string) bool {
	host = strings.ToLower(host)
	pattern = strings.ToLower(strings.TrimPrefix(pattern, "."))

	if host == pattern {
		return true
	}
	return strings.HasSuffix(host, "."+pattern)
}
