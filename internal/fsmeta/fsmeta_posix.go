//go:build linux || darwin

package fsmeta

import "os"

// unixPermString formats the low 9 permission bits of mode as "rwxr-xr-x".
func unixPermString(mode os.FileMode) string {
	const flags = "rwxrwxrwx"
	var buf [9]byte
	for i := range buf {
		bit := os.FileMode(1) << uint(8-i)
		if mode&bit != 0 {
			buf[i] = flags[i]
		} else {
			buf[i] = '-'
		}
	}
	return string(buf[:])
}
