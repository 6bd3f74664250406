package psarc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ExtractTo writes one member to destPath, creating parent directories as
// needed.
func (a *Archive) ExtractTo(name, destPath string) error {
	data, err := a.Extract(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0o644)
}

// ExtractAll writes every named member under destDir using its
// archive-relative path. Members extract in parallel, bounded by GOMAXPROCS.
// Individual failures do not halt the batch; they are collected and returned
// together once every member has been attempted.
func (a *Archive) ExtractAll(destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	members := a.List()
	failures := make([]error, len(members))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, m := range members {
		k, m := k, m
		g.Go(func() error {
			failures[k] = a.extractMemberTo(m, destDir)
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for _, err := range failures {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("psarc: failed to extract %d member(s): %w", len(failed), errors.Join(failed...))
	}
	return nil
}

func (a *Archive) extractMemberTo(m Member, destDir string) error {
	rel := filepath.FromSlash(m.Name)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("psarc: refusing member path %q outside destination", m.Name)
	}
	data, err := a.ExtractIndex(m.Index)
	if err != nil {
		return err
	}
	dest := filepath.Join(destDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}
