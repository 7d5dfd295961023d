package pipeline

import "testing"

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("labeled fields near the top", func(t *testing.T) {
		t.Parallel()

		input := "Website Redesign Proposal\nPrepared for: Acme Corp\nDate: March 2026\nVersion: 2.1\n\nProject Overview\ntext"
		meta := ExtractMetadata(input)

		if meta.Title != "Website Redesign Proposal" {
			t.Errorf("Title = %q", meta.Title)
		}
		if meta.Client != "Acme Corp" {
			t.Errorf("Client = %q", meta.Client)
		}
		if meta.Date != "March 2026" {
			t.Errorf("Date = %q", meta.Date)
		}
		if meta.Version != "2.1" {
			t.Errorf("Version = %q", meta.Version)
		}
	})

	t.Run("client label variant", func(t *testing.T) {
		t.Parallel()

		meta := ExtractMetadata("Client: Globex\nsome body text")
		if meta.Client != "Globex" {
			t.Errorf("Client = %q", meta.Client)
		}
	})

	t.Run("defaults when nothing is found", func(t *testing.T) {
		t.Parallel()

		meta := ExtractMetadata("plain body text with no labels at all.\nmore text.")
		if meta.Title != DefaultTitle {
			t.Errorf("Title = %q, want %q", meta.Title, DefaultTitle)
		}
		if meta.Version != DefaultVersion {
			t.Errorf("Version = %q, want %q", meta.Version, DefaultVersion)
		}
		if meta.Client != "" {
			t.Errorf("Client = %q, want empty", meta.Client)
		}
		if meta.Date != "" {
			t.Errorf("Date = %q, want empty", meta.Date)
		}
	})

	t.Run("falls back to a leading header as title", func(t *testing.T) {
		t.Parallel()

		meta := ExtractMetadata("Project Overview\nSome text here.")
		if meta.Title != "Project Overview" {
			t.Errorf("Title = %q", meta.Title)
		}
	})

	t.Run("labels beyond the scan window are ignored", func(t *testing.T) {
		t.Parallel()

		input := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nClient: Too Late"
		meta := ExtractMetadata(input)
		if meta.Client != "" {
			t.Errorf("Client = %q, want empty", meta.Client)
		}
	})
}
