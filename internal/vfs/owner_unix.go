//go:build unix

package vfs

import (
	"os"
	"syscall"
)

func ownerID(fi os.FileInfo) uint32 {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return st.Uid
	}
	return 0
}
