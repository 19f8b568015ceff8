package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

var markdownRenderer = goldmark.New()

// cleanMarkdown strips an outer ``` or ```markdown fence some models wrap
// their answer in.
func cleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return cleaned
	}

	cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "```"), "```")
	cleaned = strings.TrimPrefix(cleaned, "markdown")
	return strings.TrimSpace(cleaned)
}

// RenderMarkdown converts narrative markdown to HTML. Raw HTML in the model
// output is not passed through.
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
