package wwise

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTool(t *testing.T, script string) string {
	t.Helper()
	tool := filepath.Join(t.TempDir(), "tool.sh")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return tool
}

func TestExecTranscode(t *testing.T) {
	e := &Exec{Command: writeTool(t, `cp "$1" "$2"`)}

	out, err := e.Transcode([]byte("RIFFmedia"))
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if !bytes.Equal(out, []byte("RIFFmedia")) {
		t.Fatalf("out = %q", out)
	}
}

func TestExecTranscodePassesArgs(t *testing.T) {
	e := &Exec{
		Command: writeTool(t, `printf '%s' "$1" > "$3"`),
		Args:    []string{"banner"},
	}

	out, err := e.Transcode(nil)
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if string(out) != "banner" {
		t.Fatalf("out = %q", out)
	}
}

func TestExecTranscodeToolFailure(t *testing.T) {
	e := &Exec{Command: writeTool(t, `echo "codebook missing" >&2; exit 3`)}

	_, err := e.Transcode([]byte("x"))
	if err == nil || !strings.Contains(err.Error(), "codebook missing") {
		t.Fatalf("err = %v", err)
	}
}

func TestExecTranscodeNoOutputFile(t *testing.T) {
	e := &Exec{Command: writeTool(t, `exit 0`)}

	_, err := e.Transcode([]byte("x"))
	if err == nil || !strings.Contains(err.Error(), "produced no output") {
		t.Fatalf("err = %v", err)
	}
}
