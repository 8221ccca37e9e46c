package engine

import "errors"

// ErrEvaluationDefect is returned by the evaluator when an enabled rule is
// internally inconsistent with its match type at evaluation time (a regex
// that no longer compiles). Rule validation makes this unreachable under
// normal operation; when it fires, the returned decision blocks the request
// so the defect cannot silently allow traffic.
var ErrEvaluationDefect = errors.New("rule set contains a defective rule")
