package email

// PreviewData contains sample template data for local preview/testing.
//
// It maps:
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateProductEvent: {
		"Action":      "created",
		"ProductID":   "1",
		"ProductName": "Widget",
		"Price":       "9.99",
		"Stock":       "3",
		"OccurredAt":  "2025-01-01T10:00:00Z",
	},
}
