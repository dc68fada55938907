package api

// Envelope wraps every response body: data is the payload on success and the
// error message otherwise.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type Report struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	EmbedURL string `json:"embedUrl"`
}

type ReportRequest struct {
	Name     string `json:"name"`
	EmbedURL string `json:"embedUrl"`
}
