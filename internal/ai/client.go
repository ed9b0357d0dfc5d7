// Package ai wraps the LLM provider used for cover letters, resume match
// analysis and interview question generation. Providers return raw prose;
// the parse helpers in results.go turn the JSON-shaped responses into
// typed results with an explicit fallback marker for malformed output.
package ai

import (
	"context"
	"strings"
)

// Client is the interface for AI text providers.
type Client interface {
	// Generate sends a single prompt and returns the model's text output.
	Generate(ctx context.Context, prompt string) (string, error)
}

// stripMarkdownFences removes a ```json ... ``` wrapper if the model adds
// one despite being told not to.
func stripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
