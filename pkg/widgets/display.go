package widgets

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/models/api"
)

// ReportLister fetches the public report collection.
type ReportLister interface {
	ListReports(ctx context.Context) ([]api.Report, error)
}

// Frame is one embedded report as the home page renders it.
type Frame struct {
	Key   string
	Title string
	Src   string
}

// Display is the read-only home page section. It fetches the collection once
// per mount and stays hidden unless that fetch returned at least one report.
type Display struct {
	source ReportLister

	mu      sync.RWMutex
	mounted bool
	reports []api.Report
}

func NewDisplay(source ReportLister) *Display {
	return &Display{source: source}
}

// Mount performs the single fetch. Later calls are no-ops, failures leave the
// widget empty.
func (d *Display) Mount(ctx context.Context) {
	d.mu.Lock()
	if d.mounted {
		d.mu.Unlock()
		return
	}
	d.mounted = true
	d.mu.Unlock()

	reports, err := d.source.ListReports(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("failed to fetch reports")
		return
	}

	d.mu.Lock()
	d.reports = reports
	d.mu.Unlock()
}

func (d *Display) Visible() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.reports) > 0
}

func (d *Display) Frames() []Frame {
	d.mu.RLock()
	defer d.mu.RUnlock()

	frames := make([]Frame, 0, len(d.reports))
	for _, r := range d.reports {
		frames = append(frames, Frame{Key: r.ID, Title: r.Name, Src: r.EmbedURL})
	}
	return frames
}
