package pages

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	out, err := Markdown("Hello **world**\n\n<script>alert(1)</script>\n\n[link](javascript:alert(1))")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>world</strong>")
	assert.NotContains(t, string(out), "<script")
	assert.NotContains(t, string(out), "javascript:")
}

func TestExcerpt(t *testing.T) {
	tests := map[string]struct {
		limit int
		in    any
		want  string
	}{
		"short":             {limit: 100, in: "Hi there", want: "Hi there"},
		"html":              {limit: 100, in: template.HTML("<p>Hello <b>brave</b></p><p>new world</p>"), want: "Hello brave new world"},
		"cut on word":       {limit: 11, in: "Hello brave new world", want: "Hello brave…"},
		"cut inside word":   {limit: 9, in: "Hello brave new world", want: "Hello…"},
		"drops scripts":     {limit: 100, in: "<p>Safe</p><script>evil()</script>", want: "Safe"},
		"trims punctuation": {limit: 6, in: "Hello, world", want: "Hello…"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Excerpt(tc.limit, tc.in))
		})
	}
}
