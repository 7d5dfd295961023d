package propdoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleProposal = `Website Redesign Proposal
Prepared for: Acme Corp

Project Overview
Brief overview of the proposed project...

Objectives
- Increase conversion
- Reduce load times

Pricing Summary
ROLE  DESCRIPTION  HOURS  RATE  TOTAL
Engineer  Build thing  10  $100  $1,000`

// fakeRenderer satisfies PaginatedRenderer without a browser.
type fakeRenderer struct {
	data   []byte
	err    error
	closed bool
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, htmlContent string, opts *PageOptions) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

// fixedClock returns a clock pinned to a known instant.
func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newTestGenerator(t *testing.T, dir string, fake *fakeRenderer, extra ...Option) *Generator {
	t.Helper()

	opts := append([]Option{
		WithOutputDir(dir),
		WithClock(fixedClock()),
		WithPaginatedRenderer(fake),
	}, extra...)
	gen, err := NewGenerator(opts...)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return gen
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("all formats succeed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		gen := newTestGenerator(t, dir, &fakeRenderer{data: []byte("%PDF-1.4 fake")})

		result, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Formats: []string{FormatHTML, FormatPDF, FormatDocx},
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		if !result.Success {
			t.Error("Success = false")
		}
		if len(result.Outputs) != 3 {
			t.Fatalf("len(Outputs) = %d, want 3", len(result.Outputs))
		}
		for _, out := range result.Outputs {
			if !out.Success {
				t.Errorf("%s conversion failed: %s", out.Format, out.Error)
				continue
			}
			path := filepath.Join(dir, out.Filename)
			info, err := os.Stat(path)
			if err != nil {
				t.Errorf("artifact %s not written: %v", out.Filename, err)
				continue
			}
			if info.Size() != out.Size {
				t.Errorf("%s Size = %d, file is %d", out.Format, out.Size, info.Size())
			}
			if out.DownloadURL != "/downloads/"+out.Filename {
				t.Errorf("DownloadURL = %q", out.DownloadURL)
			}
		}

		if result.Document.Metadata.Title != "Website Redesign Proposal" {
			t.Errorf("Title = %q", result.Document.Metadata.Title)
		}
		if result.Document.Metadata.Client != "Acme Corp" {
			t.Errorf("Client = %q", result.Document.Metadata.Client)
		}
		if result.Document.Tables != 1 {
			t.Errorf("Tables = %d, want 1", result.Document.Tables)
		}
		if result.Stats.InputLength != len(sampleProposal) {
			t.Errorf("InputLength = %d", result.Stats.InputLength)
		}
		if result.Validation.Score < 0 || result.Validation.Score > 100 {
			t.Errorf("Score = %d, out of [0,100]", result.Validation.Score)
		}
	})

	t.Run("artifact names are deterministic", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		gen := newTestGenerator(t, dir, &fakeRenderer{data: []byte("pdf")})

		result, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Formats: []string{FormatHTML},
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		want := "acme-corp-website-redesign-proposal-20260301-120000.html"
		if result.Outputs[0].Filename != want {
			t.Errorf("Filename = %q, want %q", result.Outputs[0].Filename, want)
		}
	})

	t.Run("short input is rejected before any output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		gen := newTestGenerator(t, dir, &fakeRenderer{data: []byte("pdf")})

		_, err := gen.Generate(context.Background(), Input{RawText: strings.Repeat("x", 50)})
		if !errors.Is(err, ErrInputTooShort) {
			t.Fatalf("err = %v, want ErrInputTooShort", err)
		}

		entries, readErr := os.ReadDir(dir)
		if readErr != nil {
			t.Fatal(readErr)
		}
		if len(entries) != 0 {
			t.Errorf("output dir has %d entries, want 0", len(entries))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{})
		if _, err := gen.Generate(context.Background(), Input{}); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("err = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{})
		_, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Formats: []string{"epub"},
		})
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("err = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("invalid page size", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{})
		_, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Layout:  &Layout{PageSize: "tabloid"},
		})
		if !errors.Is(err, ErrInvalidPageSize) {
			t.Errorf("err = %v, want ErrInvalidPageSize", err)
		}
	})

	t.Run("format failures are isolated", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		gen := newTestGenerator(t, dir, &fakeRenderer{err: errors.New("browser gone")})

		result, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Formats: []string{FormatHTML, FormatPDF},
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		byFormat := map[string]FormatResult{}
		for _, out := range result.Outputs {
			byFormat[out.Format] = out
		}
		if !byFormat[FormatHTML].Success {
			t.Errorf("html failed: %s", byFormat[FormatHTML].Error)
		}
		if byFormat[FormatPDF].Success {
			t.Error("pdf should have failed")
		}
		if !strings.Contains(byFormat[FormatPDF].Error, "browser gone") {
			t.Errorf("pdf error = %q", byFormat[FormatPDF].Error)
		}
	})

	t.Run("default formats are html and pdf", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{data: []byte("pdf")})
		result, err := gen.Generate(context.Background(), Input{RawText: sampleProposal})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(result.Outputs) != 2 {
			t.Fatalf("len(Outputs) = %d, want 2", len(result.Outputs))
		}
		if result.Outputs[0].Format != FormatHTML || result.Outputs[1].Format != FormatPDF {
			t.Errorf("formats = %s, %s", result.Outputs[0].Format, result.Outputs[1].Format)
		}
	})

	t.Run("stock phrases surface as warnings", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{data: []byte("pdf")})
		result, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Formats: []string{FormatHTML},
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(result.Warnings) == 0 {
			t.Error("expected warnings for the overview stub left in the input")
		}
	})

	t.Run("client override wins over extracted metadata", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{data: []byte("pdf")})
		result, err := gen.Generate(context.Background(), Input{
			RawText: sampleProposal,
			Client:  "Globex",
			Formats: []string{FormatHTML},
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if result.Document.Metadata.Client != "Globex" {
			t.Errorf("Client = %q, want Globex", result.Document.Metadata.Client)
		}
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gen := newTestGenerator(t, t.TempDir(), &fakeRenderer{})
		if _, err := gen.Generate(ctx, Input{RawText: sampleProposal}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestWithTimeoutPanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive timeout")
		}
	}()
	WithTimeout(0)
}

func TestGeneratorClose(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	gen := newTestGenerator(t, t.TempDir(), fake)

	if err := gen.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !fake.closed {
		t.Error("Close did not reach the renderer")
	}
}

func TestValidateFormats(t *testing.T) {
	t.Parallel()

	t.Run("defaults on empty", func(t *testing.T) {
		t.Parallel()

		got, err := validateFormats(nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0] != FormatHTML || got[1] != FormatPDF {
			t.Errorf("formats = %v", got)
		}
	})

	t.Run("normalizes case", func(t *testing.T) {
		t.Parallel()

		got, err := validateFormats([]string{"HTML", "Docx"})
		if err != nil {
			t.Fatal(err)
		}
		if got[0] != FormatHTML || got[1] != FormatDocx {
			t.Errorf("formats = %v", got)
		}
	})

	t.Run("rejects unknown", func(t *testing.T) {
		t.Parallel()

		if _, err := validateFormats([]string{"epub"}); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("err = %v, want ErrUnknownFormat", err)
		}
	})
}

func TestLayoutValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		layout  *Layout
		wantErr bool
	}{
		{"nil layout", nil, false},
		{"empty page size", &Layout{}, false},
		{"letter", &Layout{PageSize: "letter"}, false},
		{"uppercase a4", &Layout{PageSize: "A4"}, false},
		{"legal", &Layout{PageSize: "legal"}, false},
		{"unknown", &Layout{PageSize: "tabloid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidPageSize) {
				t.Errorf("err = %v, want ErrInvalidPageSize", err)
			}
		})
	}
}
