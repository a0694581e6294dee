package crypto

import "runtime"

// Wipe zeroes every buffer in bufs. Copies the runtime made earlier, such as
// the string a password was converted from, are out of reach.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
	runtime.KeepAlive(bufs)
}
