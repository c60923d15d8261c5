// SPDX-License-Identifier: MPL-2.0

// Package devinfo gathers facts about a filesystem object: POSIX stat
// fields, the ls-style file type letter, and, for block devices, blkid
// attributes and matching mount table entries.
package devinfo

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"hostfacts-cli/internal/execwrap"
)

type (
	// Info is the fact set for one filesystem object. Fields beyond IsExists
	// are populated only when the object exists; Blkid and Mount only for
	// block devices.
	Info struct {
		// IsExists reports whether the path exists on the system.
		IsExists bool `json:"is_exists"`
		// Stat holds the POSIX stat(2) fields.
		Stat *StatInfo `json:"stat,omitempty"`
		// FileType is the type letter as in the first column of `ls -l`:
		// b, c, d, -, l, p or s.
		FileType string `json:"filetype,omitempty"`
		// Blkid holds key-value pairs from `blkid --output export`.
		Blkid map[string]string `json:"blkid,omitempty"`
		// Mount holds the mount table entries whose source is this device.
		Mount []map[string]any `json:"mount,omitempty"`
	}

	// StatInfo mirrors the POSIX stat(2) structure. Timestamps are Unix
	// seconds with fractional nanoseconds.
	StatInfo struct {
		Dev   uint64  `json:"dev"`
		Ino   uint64  `json:"ino"`
		Mode  uint32  `json:"mode"`
		Nlink uint64  `json:"nlink"`
		UID   uint32  `json:"uid"`
		GID   uint32  `json:"gid"`
		Rdev  uint64  `json:"rdev"`
		Size  int64   `json:"size"`
		Atime float64 `json:"atime"`
		Mtime float64 `json:"mtime"`
		Ctime float64 `json:"ctime"`
		// Error is set instead of the fields above when stat itself failed.
		Error string `json:"error,omitempty"`
	}
)

// blkidKeyRenames maps blkid export keys to their fact names.
var blkidKeyRenames = map[string]string{
	"devname":   "dev_name",
	"partlabel": "part_label",
	"partuuid":  "part_uuid",
}

// Collect gathers facts about path. A missing path is not an error: the
// result just reports IsExists false. Only external command failures that
// prevent any inventory at all (a missing binary, a killed process) surface
// as errors.
func Collect(ctx context.Context, runner execwrap.Runner, path string) (*Info, error) {
	info := &Info{}

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return info, nil
		}
		info.IsExists = true
		info.Stat = &StatInfo{Error: err.Error()}
		return info, nil
	}

	info.IsExists = true
	info.Stat = newStatInfo(fi)
	info.FileType = classifyFileType(fi.Mode())

	if info.FileType != "b" {
		return info, nil
	}

	blkid, err := runBlkid(ctx, runner, path)
	if err != nil {
		return nil, err
	}
	if len(blkid) > 0 {
		info.Blkid = blkid
	}

	mount, err := runFindmnt(ctx, runner, path)
	if err != nil {
		return nil, err
	}
	if len(mount) > 0 {
		info.Mount = mount
	}
	return info, nil
}

// classifyFileType returns the ls -l type letter for a file mode, or ""
// when the mode matches no known type.
func classifyFileType(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeCharDevice != 0:
		return "c"
	case mode&fs.ModeDevice != 0:
		return "b"
	case mode.IsRegular():
		return "-"
	case mode.IsDir():
		return "d"
	case mode&fs.ModeNamedPipe != 0:
		return "p"
	case mode&fs.ModeSocket != 0:
		return "s"
	case mode&fs.ModeSymlink != 0:
		return "l"
	default:
		return ""
	}
}

// runBlkid queries `blkid --output export` for one device and parses the
// KEY=VALUE pairs. A non-zero exit (unknown or unformatted device) yields
// no data, matching blkid's own convention.
func runBlkid(ctx context.Context, runner execwrap.Runner, dev string) (map[string]string, error) {
	res, err := runner.Run(ctx, "blkid", "--output", "export", dev)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, nil
	}

	data := map[string]string{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key := strings.ToLower(k)
		if renamed, ok := blkidKeyRenames[key]; ok {
			key = renamed
		}
		data[key] = v
	}
	return data, nil
}

// runFindmnt reads the mount table as JSON and keeps the entries whose
// source is dev. Failures of findmnt itself are reported inline as a raw
// rc/out entry rather than aborting the collection.
func runFindmnt(ctx context.Context, runner execwrap.Runner, dev string) ([]map[string]any, error) {
	res, err := runner.Run(ctx, "findmnt", "-J")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return []map[string]any{{"rc": res.ExitCode, "out": res.Stdout}}, nil
	}

	var table struct {
		Filesystems []map[string]any `json:"filesystems"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &table); err != nil {
		return []map[string]any{{"rc": res.ExitCode, "out": res.Stdout, "json": false}}, nil
	}

	var matches []map[string]any
	for _, entry := range table.Filesystems {
		if src, _ := entry["source"].(string); src == dev {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}
