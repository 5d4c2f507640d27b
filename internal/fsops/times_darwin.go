//go:build darwin

package fsops

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func fileTimes(path string, info fs.FileInfo) (created, accessed time.Time) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime(), info.ModTime()
	}
	return time.Unix(st.Btim.Unix()), time.Unix(st.Atim.Unix())
}
