package tempdir

import (
	"strings"
	"testing"
)

func newDir(t *testing.T, opts ...Option) *TempDirectory {
	t.Helper()
	d, err := New(opts...)
	if err != nil {
		t.Fatalf("new tempdir: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	})
	return d
}

func TestWriteReadAndCheck(t *testing.T) {
	d := newDir(t)

	if _, err := d.Write("something", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := d.Write(".svn", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := d.Check(".svn", "something"); err != nil {
		t.Fatalf("check: %v", err)
	}

	content, err := d.Read("something")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "stuff" {
		t.Fatalf("expected %q, got %q", "stuff", content)
	}
}

func TestSubdirectories(t *testing.T) {
	d := newDir(t)

	if _, err := d.Write("some/thing/something", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := d.Write("some/thing/.svn", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := d.CheckDir("some/thing", ".svn", "something"); err != nil {
		t.Fatalf("check dir: %v", err)
	}
	if err := d.Check("some/"); err != nil {
		t.Fatalf("check root: %v", err)
	}
}

func TestCheckReportsMismatch(t *testing.T) {
	d := newDir(t)

	if _, err := d.Write("something", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := d.Check(".svn", "something")
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	if !strings.Contains(err.Error(), ".svn") {
		t.Fatalf("expected missing entry named in error, got %q", err.Error())
	}
}

func TestIgnorePatterns(t *testing.T) {
	d := newDir(t, WithIgnore(".svn", "*.tmp"))

	if _, err := d.Write("something", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := d.Write(".svn", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := d.Write("scratch.tmp", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := d.Check("something"); err != nil {
		t.Fatalf("expected ignored entries filtered: %v", err)
	}
}

func TestCleanupRemovesDirectory(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("new tempdir: %v", err)
	}
	path := d.Path()
	if _, err := d.Write("something", []byte("stuff")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := d.Read("something"); err == nil {
		t.Fatalf("expected reads to fail after cleanup under %s", path)
	}
	// Cleanup twice is safe.
	if err := d.Cleanup(); err != nil {
		t.Fatalf("second cleanup: %v", err)
	}
}
