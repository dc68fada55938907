package reports

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/adapters"
	"github.com/de-tools/dashboard/pkg/handlers/respond"
	"github.com/de-tools/dashboard/pkg/models/api"
	"github.com/de-tools/dashboard/pkg/services/reports"
)

const messageInvalidBody = "Invalid request body"

type Handler struct {
	reports reports.Service
}

func NewHandler(reports reports.Service) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	list, err := h.reports.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Success(w, r, http.StatusOK, adapters.MapDomainReportsToAPI(list))
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("failed to decode report")
		respond.Fail(w, r, http.StatusBadRequest, messageInvalidBody)
		return
	}

	list, err := h.reports.Create(r.Context(), adapters.MapAPIReportRequestToDomain(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Success(w, r, http.StatusCreated, adapters.MapDomainReportsToAPI(list))
}

func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Str("report_id", id).Msg("failed to decode report")
		respond.Fail(w, r, http.StatusBadRequest, messageInvalidBody)
		return
	}

	list, err := h.reports.Update(r.Context(), id, adapters.MapAPIReportRequestToDomain(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Success(w, r, http.StatusOK, adapters.MapDomainReportsToAPI(list))
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	list, err := h.reports.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Success(w, r, http.StatusOK, adapters.MapDomainReportsToAPI(list))
}
