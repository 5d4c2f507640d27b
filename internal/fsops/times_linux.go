//go:build linux

package fsops

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes returns creation and access times. Filesystems without birth
// time report the inode change time instead.
func fileTimes(path string, info fs.FileInfo) (created, accessed time.Time) {
	created, accessed = info.ModTime(), info.ModTime()

	var stx unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_ATIME | unix.STATX_CTIME
	if err := unix.Statx(unix.AT_FDCWD, path, 0, mask, &stx); err != nil {
		return created, accessed
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		accessed = time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec))
	}
	switch {
	case stx.Mask&unix.STATX_BTIME != 0:
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	case stx.Mask&unix.STATX_CTIME != 0:
		created = time.Unix(stx.Ctime.Sec, int64(stx.Ctime.Nsec))
	}
	return created, accessed
}
