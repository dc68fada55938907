package export

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/dashboard/pkg/models/api"
	"github.com/de-tools/dashboard/pkg/widgets"
)

type TableConfig struct {
	IDWidth   int
	NameWidth int
	URLWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:   24,
		NameWidth: 32,
		URLWidth:  64,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Writer() io.Writer {
	return c.writer
}

// Reports prints the collection as a fixed-width table.
func (c *Reporter) Reports(reports []api.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(id, name, url string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s |",
				c.config.IDWidth, truncate(id, c.config.IDWidth),
				c.config.NameWidth, truncate(name, c.config.NameWidth),
				c.config.URLWidth, truncate(url, c.config.URLWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.URLWidth+2))
		},
	}

	tmpl := `Power BI reports: {{len .}}
{{if .}}{{separator}}
{{formatRow "ID" "Name" "Embed URL"}}
{{separator}}
{{range .}}{{formatRow .ID .Name .EmbedURL}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("reports").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, reports)
}

type configEntry struct {
	Key   string
	Value interface{}
}

// Config prints every key of the config record, sorted. assetURL resolves the
// customLogo file name into a fetchable location.
func (c *Reporter) Config(record api.ConfigRecord, assetURL func(string) string) error {
	entries := make([]configEntry, 0, len(record))
	for k, v := range record {
		entries = append(entries, configEntry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	logoURL := ""
	if name := record.CustomLogo(); name != "" && assetURL != nil {
		logoURL = assetURL(name)
	}

	tmpl := `{{range .Entries}}{{.Key}}: {{printf "%v" .Value}}
{{end}}{{if .LogoURL}}logo url: {{.LogoURL}}
{{end}}`

	t, err := template.New("config").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Entries []configEntry
		LogoURL string
	}{Entries: entries, LogoURL: logoURL})
}

func (c *Reporter) Token(token api.Token) error {
	_, err := fmt.Fprintf(c.writer, "token: %s\nexpires: %s\n",
		token.Token, token.ExpiresAt.Format(time.RFC3339))
	return err
}

const embedTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Power BI</title></head>
<body>
{{if .}}<div class="PowerBISection">
{{range .}}  <div class="ReportContainer" data-key="{{.Key}}">
    <h3 class="ReportTitle">{{.Title}}</h3>
    <div class="IframeWrapper">
      <iframe title="{{.Title}}" src="{{.Src}}" frameborder="0" allowfullscreen class="ReportIframe"></iframe>
    </div>
  </div>
{{end}}</div>
{{end}}</body>
</html>
`

// Embed renders the home page section for frames. No frames renders an
// empty body.
func (c *Reporter) Embed(frames []widgets.Frame) error {
	t, err := htmltemplate.New("embed").Parse(embedTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, frames)
}

func truncate(s string, width int) string {
	if len(s) <= width || width < 4 {
		return s
	}
	return s[:width-3] + "..."
}
