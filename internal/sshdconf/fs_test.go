// SPDX-License-Identifier: MPL-2.0

package sshdconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOSConfigFS_ReadLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	writeFile(t, path, "Port 22\r\nUsePAM yes\n")

	lines, err := OSConfigFS{}.ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 || lines[0] != "Port 22" || lines[1] != "UsePAM yes" {
		t.Errorf("lines = %q, want CRLF stripped", lines)
	}
}

func TestOSConfigFS_ReadLinesPermissiveDecoding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("Port 22\n\xff\xfe\nUsePAM yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := OSConfigFS{}.ReadLines(path)
	if err != nil {
		t.Fatalf("invalid bytes must not be fatal: %v", err)
	}
	if lines[0] != "Port 22" || lines[2] != "UsePAM yes" {
		t.Errorf("lines = %q", lines)
	}
}

func TestOSConfigFS_IsRegularFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	writeFile(t, path, "")

	fs := OSConfigFS{}
	if !fs.IsRegularFile(path) {
		t.Error("regular file not recognized")
	}
	if fs.IsRegularFile(dir) {
		t.Error("directory reported as regular file")
	}
	if fs.Exists(filepath.Join(dir, "missing")) {
		t.Error("missing path reported as existing")
	}
}

// TestParse_OnDisk exercises the parser end to end against a real temp
// directory tree, include glob and all.
func TestParse_OnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "sshd_config")
	writeFile(t, root, "Port 22\nInclude conf.d/*.conf\nMatch User bob\nX11Forwarding yes\n")
	writeFile(t, filepath.Join(dir, "conf.d", "10-a.conf"), "Port 2222\nPermitRootLogin no\n")
	writeFile(t, filepath.Join(dir, "conf.d", "20-b.conf"), "PermitRootLogin yes\n")

	res, err := NewParser().Parse(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	port := globalOption(t, res.Config, "Port")
	if port.Value != "22" || len(port.Appearance) != 2 {
		t.Errorf("Port = %+v", port)
	}
	prl := globalOption(t, res.Config, "PermitRootLogin")
	if prl.Value != "no" {
		t.Errorf("PermitRootLogin.Value = %q, want 10-a.conf first", prl.Value)
	}
	if prl.Location != filepath.Join(dir, "conf.d", "10-a.conf") {
		t.Errorf("PermitRootLogin.Location = %q", prl.Location)
	}
	blocks := matchBlocks(t, res.Config)
	if len(blocks) != 1 || blocks[0].Condition != "User bob" {
		t.Errorf("blocks = %+v", blocks)
	}
}
