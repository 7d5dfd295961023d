package render

import (
	"strings"
	"testing"
)

func TestBuildDocumentCSS(t *testing.T) {
	t.Parallel()

	t.Run("defaults fill unset styling", func(t *testing.T) {
		t.Parallel()

		css := buildDocumentCSS(Styling{}, "")
		for _, want := range []string{
			"size: letter",
			DefaultPrimaryColor,
			DefaultBodyFont,
			"page-break-after: always",
		} {
			if !strings.Contains(css, want) {
				t.Errorf("css missing %q", want)
			}
		}
	})

	t.Run("custom values are used", func(t *testing.T) {
		t.Parallel()

		s := Styling{
			Colors: Colors{Primary: "#123456"},
			Fonts:  Fonts{Body: "Inter, sans-serif"},
		}
		css := buildDocumentCSS(s, "a4")
		for _, want := range []string{"#123456", "Inter, sans-serif", "size: A4"} {
			if !strings.Contains(css, want) {
				t.Errorf("css missing %q", want)
			}
		}
	})
}

func TestPageCSSSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"a4", "A4"},
		{"A4", "A4"},
		{"legal", "legal"},
		{"letter", "letter"},
		{"", "letter"},
		{"unknown", "letter"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := pageCSSSize(tt.input); got != tt.expected {
				t.Errorf("pageCSSSize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeCSSValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"#1a365d", "#1a365d"},
		{"red; background: url(x)", "red background: url(x)"},
		{"</style><script>", `<\/style><script>`},
		{"}body{", "body{"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSSValue(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSSValue(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
