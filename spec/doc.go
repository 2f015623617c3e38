// Package spec parses the parameter specification blocks that document
// native functions to the runtime, e.g. "a [integer!] b [integer!]".
package spec
