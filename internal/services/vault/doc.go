// Package vault runs entry operations for an authenticated session.
//
// Each user owns one vault document mapping service names to credentials.
// Every mutation is a locked read-modify-write of the whole document.
package vault
