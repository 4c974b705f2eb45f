package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer uses the glamour library for rich markdown rendering
type GlamourRenderer struct {
	Style string // Style name: "dark", "light", "notty", "ascii", "auto", or path to custom style
	Width int    // Word wrap width (0 = glamour default)
}

// NewGlamourRenderer creates a markdown renderer. Plain output gets the
// "notty" style so no escape codes reach pipes and files.
func NewGlamourRenderer(plain bool) *GlamourRenderer {
	style := "auto"
	if plain {
		style = "notty"
	}
	return &GlamourRenderer{Style: style, Width: 80}
}

// Render converts markdown to beautiful terminal output
func (r *GlamourRenderer) Render(content string, format string) string {
	// Only process markdown files
	if format != ".md" {
		return content
	}

	// Configure glamour options
	var options []glamour.TermRendererOption

	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}

	// Set width if specified
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	// Create renderer
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		// Fallback to plain text on error
		return content
	}

	// Render markdown
	rendered, err := renderer.Render(content)
	if err != nil {
		// Fallback to plain text on error
		return content
	}

	return rendered
}
