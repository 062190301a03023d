//go:build unix

package walker

import (
	"io/fs"
	"syscall"
)

// deviceID extracts the device number backing info, for the one-filesystem
// boundary check.
func deviceID(info fs.FileInfo) (uint64, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Dev), true
}
