package adapters

import (
	"github.com/de-tools/dashboard/pkg/models/api"
	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/models/store"
)

func MapStoreReportToDomain(r store.Report) domain.Report {
	return domain.Report{
		ID:       r.ID,
		Name:     r.Name,
		EmbedURL: r.EmbedURL,
	}
}

func MapDomainReportToStore(r domain.Report) store.Report {
	return store.Report{
		ID:       r.ID,
		Name:     r.Name,
		EmbedURL: r.EmbedURL,
	}
}

func MapStoreReportsToDomain(records []store.Report) []domain.Report {
	reports := make([]domain.Report, 0, len(records))
	for _, r := range records {
		reports = append(reports, MapStoreReportToDomain(r))
	}
	return reports
}

// MapDomainReportsToStore never returns nil so an empty collection persists as [].
func MapDomainReportsToStore(reports []domain.Report) []store.Report {
	records := make([]store.Report, 0, len(reports))
	for _, r := range reports {
		records = append(records, MapDomainReportToStore(r))
	}
	return records
}

func MapDomainReportsToAPI(reports []domain.Report) []api.Report {
	response := make([]api.Report, 0, len(reports))
	for _, r := range reports {
		response = append(response, api.Report{
			ID:       r.ID,
			Name:     r.Name,
			EmbedURL: r.EmbedURL,
		})
	}
	return response
}

func MapAPIReportRequestToDomain(req api.ReportRequest) domain.ReportInput {
	return domain.ReportInput{
		Name:     req.Name,
		EmbedURL: req.EmbedURL,
	}
}

func MapDomainConfigToAPI(record domain.ConfigRecord) api.ConfigRecord {
	return api.ConfigRecord(record.Clone())
}
