package email

// PreviewData holds sample data per template, used to preview and to check
// that every template renders.
var PreviewData = map[Template]map[string]string{
	TemplateTicketAccess: {
		"TicketNumber": "123456",
	},
}
