//go:build linux

package main

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// createdAt reads the birth time with statx; filesystems that do not record
// it report false.
func createdAt(path string, _ os.FileInfo) (time.Time, bool) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true
}
