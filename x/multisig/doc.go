/*
Package multisig implements an append-only transaction ledger where each
entry requires a threshold of independent owner approvals before it can be
dispatched. Approvals are individually revocable until execution, executed
entries are immutable.
*/
package multisig
