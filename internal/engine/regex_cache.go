package engine

import (
	"regexp"
	"sync"
)

// regexCache holds compiled regex patterns keyed by rule ID. It is a
// read-mostly structure: after the first successful compile for a rule the
// entry is shared read-only, and concurrent readers never block each other.
//
// Entries remember the pattern they were compiled from, so a rule whose
// pattern was updated is transparently recompiled on next use instead of
// serving a stale program.
type regexCache struct {
	entries sync.Map // int64 -> *regexEntry
}

type regexEntry struct {
	pattern string
	re      *regexp.Regexp
}

func newRegexCache() *regexCache {
	return &regexCache{}
}

// get returns the compiled regex for the given rule ID and pattern,
// compiling and caching it on first use. Under a concurrent first access
// two goroutines may compile redundantly; LoadOrStore guarantees that all
// of them observe one fully-built winning entry, never a partial one.
func (c *regexCache) get(ruleID int64, pattern string) (*regexp.Regexp, error) {
	if v, ok := c.entries.Load(ruleID); ok {
		entry := v.(*regexEntry)
		if entry.pattern == pattern {
			return entry.re, nil
		}
		// Pattern changed since the entry was cached; fall through and
		// recompile below.
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	entry := &regexEntry{pattern: pattern, re: re}
	if v, loaded := c.entries.LoadOrStore(ruleID, entry); loaded {
		existing := v.(*regexEntry)
		if existing.pattern == pattern {
			return existing.re, nil
		}
		c.entries.Store(ruleID, entry)
	}

	return re, nil
}

// forget drops the cached entry for a rule. Called when a rule is deleted.
func (c *regexCache) forget(ruleID int64) {
	c.entries.Delete(ruleID)
}

// Forget drops the matcher's cached regex for a rule.
func (m *Matcher) Forget(ruleID int64) {
	m.regexes.forget(ruleID)
}
