package wwise

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
)

// Exec shells out to an external converter, invoked as
//
//	command [args...] <input.wem> <output.ogg>
//
// with the media staged in a temporary directory. Anything the tool prints
// is folded into the error when it fails.
type Exec struct {
	Command string
	Args    []string
}

func (e *Exec) Transcode(wem []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "wwise")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.wem")
	out := filepath.Join(dir, "out.ogg")
	if err := os.WriteFile(in, wem, 0o600); err != nil {
		return nil, err
	}

	cmd := exec.Command(e.Command, append(slices.Clone(e.Args), in, out)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if msg := bytes.TrimSpace(output); len(msg) > 0 {
			return nil, fmt.Errorf("wwise: %s: %w: %s", e.Command, err, msg)
		}
		return nil, fmt.Errorf("wwise: %s: %w", e.Command, err)
	}

	ogg, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("wwise: %s produced no output: %w", e.Command, err)
	}
	return ogg, nil
}
