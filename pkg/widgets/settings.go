package widgets

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/models/api"
)

const (
	MessageMissingFields  = "Please fill in both name and embed URL"
	MessageReportAdded    = "Power BI report added"
	MessageReportUpdated  = "Power BI report updated"
	MessageReportRemoved  = "Power BI report removed"
	MessageAddFailed      = "Failed to add report"
	MessageUpdateFailed   = "Failed to update report"
	MessageRemoveFailed   = "Failed to remove report"
	MessageNoFile         = "Please select a file first"
	MessageLogoUploaded   = "Logo uploaded successfully"
	MessageLogoRemoved    = "Logo removed successfully"
	MessageUploadFailed   = "Failed to upload logo"
	MessageLogoRemoveFail = "Failed to remove logo"
)

// SettingsAPI is the slice of the dashboard API the admin widget drives.
type SettingsAPI interface {
	ReportLister
	CreateReport(ctx context.Context, req api.ReportRequest) ([]api.Report, error)
	UpdateReport(ctx context.Context, id string, req api.ReportRequest) ([]api.Report, error)
	DeleteReport(ctx context.Context, id string) ([]api.Report, error)
	GetConfig(ctx context.Context) (api.ConfigRecord, error)
	UploadLogo(ctx context.Context, filename string, content io.Reader) (api.ConfigRecord, error)
	DeleteLogo(ctx context.Context) (api.ConfigRecord, error)
}

// Notifier shows transient messages to the admin.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type ReportForm struct {
	Name     string
	EmbedURL string
}

func (f ReportForm) complete() bool {
	return strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.EmbedURL) != ""
}

func (f ReportForm) request() api.ReportRequest {
	return api.ReportRequest{Name: f.Name, EmbedURL: f.EmbedURL}
}

type selectedFile struct {
	name    string
	content []byte
}

// Settings is the admin report and logo editor. At most one report is in edit
// mode. Every successful mutation replaces the local snapshot with the
// collection the server returned; failures leave state untouched.
type Settings struct {
	api    SettingsAPI
	notify Notifier

	Form      ReportForm
	EditForm  ReportForm
	editingID string

	reports []api.Report
	config  api.ConfigRecord
	file    *selectedFile
}

func NewSettings(client SettingsAPI, notify Notifier) *Settings {
	return &Settings{api: client, notify: notify}
}

// Load fetches the collection and the config record.
func (s *Settings) Load(ctx context.Context) error {
	reports, err := s.api.ListReports(ctx)
	if err != nil {
		return err
	}
	config, err := s.api.GetConfig(ctx)
	if err != nil {
		return err
	}
	s.reports = reports
	s.config = config
	return nil
}

func (s *Settings) Reports() []api.Report {
	return append([]api.Report(nil), s.reports...)
}

// EditingID is the report currently in edit mode, or "".
func (s *Settings) EditingID() string {
	return s.editingID
}

func (s *Settings) CustomLogo() string {
	return s.config.CustomLogo()
}

func (s *Settings) Submit(ctx context.Context) {
	if !s.Form.complete() {
		s.notify.Error(MessageMissingFields)
		return
	}

	reports, err := s.api.CreateReport(ctx, s.Form.request())
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("create report failed")
		s.notify.Error(MessageAddFailed)
		return
	}

	s.reports = reports
	s.Form = ReportForm{}
	s.notify.Success(MessageReportAdded)
}

// StartEdit puts id into edit mode, abandoning any other edit in progress.
func (s *Settings) StartEdit(id string) bool {
	for _, r := range s.reports {
		if r.ID == id {
			s.editingID = id
			s.EditForm = ReportForm{Name: r.Name, EmbedURL: r.EmbedURL}
			return true
		}
	}
	return false
}

func (s *Settings) CancelEdit() {
	s.editingID = ""
	s.EditForm = ReportForm{}
}

func (s *Settings) SaveEdit(ctx context.Context) {
	if s.editingID == "" {
		return
	}
	if !s.EditForm.complete() {
		s.notify.Error(MessageMissingFields)
		return
	}

	reports, err := s.api.UpdateReport(ctx, s.editingID, s.EditForm.request())
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("report_id", s.editingID).Msg("update report failed")
		s.notify.Error(MessageUpdateFailed)
		return
	}

	s.reports = reports
	s.CancelEdit()
	s.notify.Success(MessageReportUpdated)
}

func (s *Settings) Delete(ctx context.Context, id string) {
	reports, err := s.api.DeleteReport(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("report_id", id).Msg("delete report failed")
		s.notify.Error(MessageRemoveFailed)
		return
	}

	s.reports = reports
	if s.editingID == id {
		s.CancelEdit()
	}
	s.notify.Success(MessageReportRemoved)
}

// SelectFile stages a logo for UploadLogo.
func (s *Settings) SelectFile(name string, content []byte) {
	s.file = &selectedFile{name: name, content: content}
}

func (s *Settings) UploadLogo(ctx context.Context) {
	if s.file == nil {
		s.notify.Error(MessageNoFile)
		return
	}

	config, err := s.api.UploadLogo(ctx, s.file.name, bytes.NewReader(s.file.content))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", s.file.name).Msg("upload logo failed")
		s.notify.Error(MessageUploadFailed)
		return
	}

	s.config = config
	s.file = nil
	s.notify.Success(MessageLogoUploaded)
}

func (s *Settings) RemoveLogo(ctx context.Context) {
	config, err := s.api.DeleteLogo(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("remove logo failed")
		s.notify.Error(MessageLogoRemoveFail)
		return
	}

	s.config = config
	s.notify.Success(MessageLogoRemoved)
}
