/*
Package errors implements the coded errors used across stronghold.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when necessary. Each extension that needs its own
error category registers it with Register(code, description) during startup.
Codes below 1000 are reserved for this package.

All runtime errors should wrap one of the registered root errors, using
Wrap/Wrapf or ErrXyz.New/Newf at the point of creation so that a stack trace
is attached exactly once. Root errors provide an Is method to test any error
against its category:

	if errors.ErrNotFound.Is(err) { ... }

Once you have an error, fmt verbs provide more context:

	%s is just the error message
	%+v is the full stack trace

Do not create errors as package level variables (`var errFoo = ErrInput.New("foo")`)
or the recorded stack trace will be useless.
*/
package errors
