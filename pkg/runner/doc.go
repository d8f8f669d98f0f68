// Package runner executes rendered templates through an external script
// interpreter. It turns a handle's ordered dependency declarations into a
// manifest preamble, writes preamble plus rendered text to a temporary
// artifact, and invokes the interpreter on it, reporting captured stdout on
// success or captured stderr on failure.
//
// The default configuration targets rust-script with its embedded cargo
// manifest comment format; both the interpreter and the manifest format are
// injectable.
package runner
