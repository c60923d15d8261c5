// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"hostfacts-cli/internal/sshdconf"
)

func TestPrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"a": 1}, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	if err := printJSON(&buf, map[string]int{"a": 1}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("indented output missing indentation: %q", buf.String())
	}
}

func TestRenderDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderDiagnostics(&buf, []sshdconf.Diagnostic{
		{Code: sshdconf.CodeIncludeNoMatch, Message: "no files matched", Path: "/etc/ssh/extra/*.conf"},
		{Code: sshdconf.CodeIncludeCycle, Message: "include cycle"},
	})

	out := buf.String()
	if !strings.Contains(out, "no files matched (/etc/ssh/extra/*.conf)") {
		t.Errorf("path not rendered: %q", out)
	}
	if !strings.Contains(out, string(sshdconf.CodeIncludeCycle)) {
		t.Errorf("code not rendered: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("got %d lines, want 2", lines)
	}
}

func TestRenderSSHDText_Ordering(t *testing.T) {
	t.Parallel()

	conf := sshdconf.Config{
		"Port":            sshdconf.Option{Value: "22", Location: "/etc/ssh/sshd_config", Appearance: []string{"/etc/ssh/sshd_config"}},
		"AddressFamily":   sshdconf.Option{Value: "any", Location: "/etc/ssh/sshd_config", Appearance: []string{"/etc/ssh/sshd_config"}},
		"PermitRootLogin": sshdconf.Option{Value: "no", Location: "/etc/ssh/conf.d/10-site.conf", Appearance: []string{"/etc/ssh/conf.d/10-site.conf"}},
		"Match": []sshdconf.MatchBlock{
			{
				Condition:  "User bob",
				Location:   "/etc/ssh/sshd_config",
				Appearance: []string{"/etc/ssh/sshd_config"},
				Options: map[string]sshdconf.Option{
					"X11Forwarding": {Value: "yes", Location: "/etc/ssh/sshd_config"},
				},
			},
		},
	}

	var buf bytes.Buffer
	renderSSHDText(&buf, conf)
	out := buf.String()

	// Global options in name order, Match blocks after them.
	af := strings.Index(out, "AddressFamily")
	port := strings.Index(out, "Port")
	match := strings.Index(out, "Match")
	if af < 0 || port < 0 || match < 0 {
		t.Fatalf("missing sections in output:\n%s", out)
	}
	if !(af < port && port < match) {
		t.Errorf("unexpected ordering (AddressFamily=%d Port=%d Match=%d):\n%s", af, port, match, out)
	}
	if !strings.Contains(out, "User bob") {
		t.Errorf("match condition not rendered:\n%s", out)
	}
	if !strings.Contains(out, "from /etc/ssh/conf.d/10-site.conf") {
		t.Errorf("location annotation missing:\n%s", out)
	}
}

func TestRenderSSHDText_NoMatchBlocks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderSSHDText(&buf, sshdconf.Config{
		"Port": sshdconf.Option{Value: "22", Location: "/etc/ssh/sshd_config"},
	})
	if strings.Contains(buf.String(), "Match") {
		t.Errorf("Match section rendered without blocks:\n%s", buf.String())
	}
}
