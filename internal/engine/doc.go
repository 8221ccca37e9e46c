// Package engine implements the rule-based threat classification core:
// pure pattern matching of observed requests against user rules and
// first-match-wins policy evaluation over an ordered rule set.
//
// The engine performs no I/O. Rule loading and event recording belong to
// the service layer; the engine only decides.
package engine
