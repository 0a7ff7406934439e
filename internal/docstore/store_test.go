// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)

	path, err := s.Create("notes.md", "# Title")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if filepath.Dir(path) != s.Root() {
		t.Errorf("Create() path = %q, want under %q", path, s.Root())
	}

	got, err := s.Read("notes.md")
	if err != nil || got != "# Title" {
		t.Fatalf("Read() = %q, %v; want \"# Title\", nil", got, err)
	}

	if err := s.Write("notes.md", "\nmore", true); err != nil {
		t.Fatalf("Write(append) error = %v", err)
	}
	got, _ = s.Read("notes.md")
	if got != "# Title\nmore" {
		t.Errorf("after append, Read() = %q, want \"# Title\\nmore\"", got)
	}

	if err := s.Write("notes.md", "replaced", false); err != nil {
		t.Fatalf("Write(overwrite) error = %v", err)
	}
	got, _ = s.Read("notes.md")
	if got != "replaced" {
		t.Errorf("after overwrite, Read() = %q, want \"replaced\"", got)
	}

	if err := s.Delete("notes.md"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Read("notes.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() after delete error = %v, want ErrNotFound", err)
	}
}

func TestWriteIsNotCreate(t *testing.T) {
	s := newTestStore(t)
	if err := s.Write("absent.md", "x", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Write(absent) error = %v, want ErrNotFound", err)
	}
	if err := s.Write("absent.md", "x", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Write(absent, append) error = %v, want ErrNotFound", err)
	}
}

func TestCreateExisting(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Create("a.md", "x"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Create("a.md", "y"); !errors.Is(err, ErrExists) {
		t.Errorf("Create(existing) error = %v, want ErrExists", err)
	}
}

func TestDeleteAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete("ghost.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(absent) error = %v, want ErrNotFound", err)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	bad := []string{
		"../outside.md",
		"a/../../outside.md",
		"/etc/passwd",
		"..",
		"",
		"   ",
	}
	for _, name := range bad {
		if _, err := s.Resolve(name); !errors.Is(err, ErrPathEscape) {
			t.Errorf("Resolve(%q) error = %v, want ErrPathEscape", name, err)
		}
	}

	// A nested relative name that stays inside the root is fine.
	if _, err := s.Resolve("sub/../inside.md"); err != nil {
		t.Errorf("Resolve(inside) error = %v", err)
	}
}

func TestListIsSetLike(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		if _, err := s.Create(name, name); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}
	if err := s.Delete("b.md"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Converted binaries are not text artifacts.
	if err := os.WriteFile(filepath.Join(s.Root(), "report.docx"), []byte("PK"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	sort.Strings(names)
	want := []string{"a.md", "c.md"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
