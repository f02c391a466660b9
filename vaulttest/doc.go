/*
Package vaulttest provides mocks and helpers for testing code that builds
on the stronghold framework. Implementations in this package are simple
and deterministic, tailored for unit tests rather than production use.
*/
package vaulttest
