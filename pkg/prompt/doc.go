// Package prompt fills unbound placeholders interactively. A Driver
// abstracts the terminal implementation so fill logic can be tested without a
// real TTY; the default driver is backed by survey.
package prompt
