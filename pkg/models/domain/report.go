package domain

import "strings"

// Report is an embedded analytics report rendered on the dashboard home page.
type Report struct {
	ID       string
	Name     string
	EmbedURL string
}

// ReportInput carries the user-editable fields of a Report.
type ReportInput struct {
	Name     string
	EmbedURL string
}

// Validate reports the required fields that are missing or blank.
func (in ReportInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.EmbedURL) == "" {
		missing = append(missing, "embedUrl")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
