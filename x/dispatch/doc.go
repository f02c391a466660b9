/*
Package dispatch implements the shared external-call primitive used by all
call-dispatch modes.

A call is identified by its Fingerprint, a keccak256 digest over the full
parameter set (target, value, function signature, data, timestamp). The
fingerprint doubles as the storage key of a queued proposal and as the
integrity check at execution time, when the caller must resupply the exact
same parameters.

The Dispatcher transfers the value from the source account to a registered
Target and invokes it with the payload. A single reentrancy Guard is shared
by every dispatching entry point, a nested guarded call fails with
ErrReentry regardless of which mode initiated the outer call.
*/
package dispatch
