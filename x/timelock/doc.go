/*
Package timelock implements single-use delayed calls.

A call is queued under its fingerprint with an execution timestamp between
MinDelay and MaxDelay from now, becomes executable at that timestamp and
stays executable for GracePeriod. Only the queued flag is stored, the full
call parameters must be resupplied at execution time.
*/
package timelock
