// Package logging builds the zap logger used as passvault's trace sink.
//
// Log output goes to stderr so command output on stdout stays clean. Logging
// is a side channel: nothing in the services depends on whether a message
// was written.
package logging
