/*
Package stronghold defines the common vocabulary of the stronghold vault: a
delayed execution and multi-party-authorized dispatch engine.

The vault accepts proposed external calls, holds them under access-control
and timing policy, and later executes each of them exactly once under
verified conditions. Three modes gate the shared dispatch primitive:
timelocked execution, threshold (multisig) approval, and time-proportional
streaming execution.

This package holds only interfaces and simple value types shared by all
extensions: the KVStore contracts, the Condition/Address principal
identifiers, UNIX time handling, the Msg/Tx/Handler plumbing and call
results. Domain state machines live in the x/ subpackages and are assembled
by the vault package.
*/
package stronghold
