// SPDX-License-Identifier: MPL-2.0

//go:build linux

package devinfo

import (
	"io/fs"
	"syscall"
)

// newStatInfo extracts the raw stat(2) fields from a FileInfo. Field widths
// differ across architectures (Nlink is 32-bit on arm64), so everything is
// widened explicitly.
func newStatInfo(fi fs.FileInfo) *StatInfo {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return &StatInfo{Size: fi.Size(), Mtime: unixSeconds(fi.ModTime().Unix(), 0)}
	}
	return &StatInfo{
		Dev:   uint64(st.Dev),
		Ino:   uint64(st.Ino),
		Mode:  uint32(st.Mode),
		Nlink: uint64(st.Nlink),
		UID:   uint32(st.Uid),
		GID:   uint32(st.Gid),
		Rdev:  uint64(st.Rdev),
		Size:  st.Size,
		Atime: unixSeconds(int64(st.Atim.Sec), int64(st.Atim.Nsec)),
		Mtime: unixSeconds(int64(st.Mtim.Sec), int64(st.Mtim.Nsec)),
		Ctime: unixSeconds(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)),
	}
}

func unixSeconds(sec, nsec int64) float64 {
	return float64(sec) + float64(nsec)/1e9
}
