//go:build !unix

package walker

import "io/fs"

// deviceID is unavailable here, making the one-filesystem flag a no-op.
func deviceID(info fs.FileInfo) (uint64, bool) {
	return 0, false
}
