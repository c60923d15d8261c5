// SPDX-License-Identifier: MPL-2.0

//go:build !linux

package devinfo

import "io/fs"

// newStatInfo builds a reduced StatInfo from the portable FileInfo surface.
// Raw stat(2) fields (device, inode, ownership) are Linux-specific; on other
// platforms only size, mode bits and the modification time are reported.
func newStatInfo(fi fs.FileInfo) *StatInfo {
	return &StatInfo{
		Mode:  uint32(fi.Mode()),
		Size:  fi.Size(),
		Mtime: float64(fi.ModTime().UnixNano()) / 1e9,
	}
}
