package xslog

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want Format
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{" TEXT ", FormatText},
		{"yaml", FormatJSON},
	}
	for _, tt := range tests {
		t.Setenv(FormatEnvKey, tt.env)
		if got := FormatFromEnv(); got != tt.want {
			t.Errorf("FormatFromEnv() with %q = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestNewTextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, LevelInfo, FormatText).Info("hello", Owner("consultant"))

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "owner=consultant") {
		t.Errorf("text record = %q", out)
	}
	if strings.HasPrefix(out, "{") {
		t.Errorf("text format produced JSON: %q", out)
	}
}
