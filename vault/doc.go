/*
Package vault assembles the engine: the owner registry, the funds
controller, the dispatcher and the three call-dispatch modes wired behind a
message router, exposed as a single facade with one entry point per
operation. Every operation runs on an isolated cache that is written on
success and discarded on failure, so no partial state survives a failed
call.
*/
package vault
