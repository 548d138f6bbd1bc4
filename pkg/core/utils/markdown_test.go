package utils

import (
	"strings"
	"testing"
)

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "# Title", "# Title"},
		{"markdown fence", "```markdown\n# Title\n```", "# Title"},
		{"bare fence", "```\n# Title\n```", "# Title"},
		{"surrounding whitespace", "  # Title \n", "# Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMarkdown(tt.input); got != tt.want {
				t.Errorf("CleanMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Returns\n\n- MOIC: **2.1x**")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>2.1x</strong>") {
		t.Errorf("unexpected HTML: %s", html)
	}
}
