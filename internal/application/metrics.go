package application

import "expvar"

// Counters for the signup flow, published under "signup" in /debug/vars.
var signupStats = expvar.NewMap("signup")

const (
	statAttempts  = "attempts"
	statInvalid   = "invalid"
	statConflicts = "conflicts"
	statCreated   = "created"
	statFailures  = "failures"
)

// RecordInvalid counts a submission rejected by the form validator.
func RecordInvalid() { signupStats.Add(statInvalid, 1) }

// SignupStats exposes the counter map, mainly for tests.
func SignupStats() *expvar.Map { return signupStats }
