package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("writes content and cleans up", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile: %v", err)
		}

		data, err := os.ReadFile(path) // #nosec G304 -- test-created path
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("content = %q", data)
		}
		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path = %q, want .html suffix", path)
		}

		cleanup()
		if FileExists(path) {
			t.Error("cleanup did not remove the file")
		}
	})

	t.Run("rejects empty extension", func(t *testing.T) {
		t.Parallel()

		_, _, err := WriteTempFile("content", "")
		if !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("err = %v, want ErrExtensionEmpty", err)
		}
	})

	t.Run("rejects path traversal in extension", func(t *testing.T) {
		t.Parallel()

		for _, ext := range []string{"html/../../etc", "a\\b", "a\x00b"} {
			if _, _, err := WriteTempFile("content", ext); !errors.Is(err, ErrExtensionPathTraversal) {
				t.Errorf("WriteTempFile(ext=%q) err = %v, want ErrExtensionPathTraversal", ext, err)
			}
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("FileExists(absent) = true")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, directories are not files")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"config", false},
		{"./config.yaml", true},
		{"/etc/propdoc.yaml", true},
		{`C:\propdoc.yaml`, true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
