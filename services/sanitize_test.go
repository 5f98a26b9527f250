package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHeaderText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Bob", "Bob"},
		{"ampersand survives", "Tom & Jerry", "Tom & Jerry"},
		{"markup stripped", "<b>Alice</b>", "Alice"},
		{"script removed", "Eve<script>alert(1)</script>", "Eve"},
		{"header injection", "Mallory\r\nBcc: victim@example.com", "Mallory Bcc: victim@example.com"},
		{"whitespace collapsed", "  Ann \t Lee  ", "Ann Lee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHeaderText(tt.input))
		})
	}
}

func TestNl2br(t *testing.T) {
	assert.Equal(t, "Hello<br>World", nl2br("Hello\nWorld"))
	assert.Equal(t, "a<br>b<br>c", nl2br("a\r\nb\rc"))
	assert.Equal(t, "no breaks", nl2br("no breaks"))
}
