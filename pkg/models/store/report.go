package store

// Report is the persisted shape of one entry in the reports collection file.
type Report struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	EmbedURL string `json:"embedUrl"`
}
