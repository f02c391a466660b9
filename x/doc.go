/*
Package x contains some standard extension points shared by the vault
extensions, mainly the Authenticator abstraction that decouples the handlers
from the way caller identity enters the context.

The domain extensions live in subpackages of x and should not import each
other except through the interfaces defined here or in the root package.
*/
package x
