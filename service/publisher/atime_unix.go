//go:build linux || darwin

package publisher

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// accessTime returns the last access time of path, falling back to the
// modification time when it cannot be read.
func accessTime(path string, info fs.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime()
	}

	return time.Unix(st.Atim.Unix())
}
