package bencode

import "unsafe"

// The returned string aliases b. Decoded strings are views into the input buffer, so it must not
// be modified while they're in use.
func bytesAsString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
