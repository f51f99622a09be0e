// Package logging provides concrete implementations of the mkdbupgrade.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes formatted messages to stderr (or any io.Writer)
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
