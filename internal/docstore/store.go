// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore persists named text artifacts under one fixed root
// directory, one file per name. Operations are keyed by name, never by
// path: names are resolved with a join-then-verify check so they cannot
// escape the root.
//
// The store performs no cross-process locking. Callers serialize access
// to the same name; the tool layer does this with a per-name mutex.
package docstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors. Callers can react to these distinctly (retry vs.
// abort) instead of pattern-matching display strings.
var (
	// ErrNotFound reports an operation on an absent artifact name.
	ErrNotFound = errors.New("document not found")

	// ErrExists reports a Create against a name that already exists.
	ErrExists = errors.New("document already exists")

	// ErrPathEscape reports a name that resolves outside the store root.
	ErrPathEscape = errors.New("document name escapes the store root")
)

// docxExt marks converted binary artifacts; List skips them.
const docxExt = ".docx"

// Store is a flat-file artifact store rooted at a fixed directory.
type Store struct {
	root string
}

// New creates the root directory if needed and returns a Store over it.
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving store root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating store root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string { return s.root }

// Resolve maps an artifact name to its absolute path under the root.
// It returns ErrPathEscape when the name is empty, absolute, or resolves
// outside the root after cleaning.
func (s *Store) Resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %q", ErrPathEscape, name)
	}
	path := filepath.Join(s.root, name)
	if path != s.root && !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscape, name)
	}
	if path == s.root {
		return "", fmt.Errorf("%w: %q", ErrPathEscape, name)
	}
	return path, nil
}

// Create writes a new text artifact and returns its resolved path. It
// fails with ErrExists when the name is already taken; Write mutates
// existing artifacts.
func (s *Store) Create(name, content string) (string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	return path, nil
}

// Read returns the full artifact content, or ErrNotFound.
func (s *Store) Read(name string) (string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// Write mutates an existing artifact: append concatenates, overwrite
// replaces the content entirely. Write is not Create; an absent name
// fails with ErrNotFound.
func (s *Store) Write(name, content string, appendMode bool) error {
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("checking %s: %w", name, err)
	}

	flags := os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Delete removes the artifact, or fails with ErrNotFound.
func (s *Store) Delete(name string) error {
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	return nil
}

// List enumerates the text artifacts in the root. Order follows the
// directory listing and carries no meaning. Converted binary artifacts
// and subdirectories are skipped.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing store root: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), docxExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
