package email

import "embed"

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateProductEvent corresponds to templates/product_event.html
	TemplateProductEvent Template = "product_event"
)

//go:embed templates/*.html
var templates embed.FS
