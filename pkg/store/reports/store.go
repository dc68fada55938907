package reports

import (
	"context"

	"github.com/de-tools/dashboard/pkg/adapters"
	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/models/store"
	"github.com/de-tools/dashboard/pkg/store/docstore"
)

// DocumentName is the name of the reports collection document.
const DocumentName = "powerbi.json"

// Store persists the ordered reports collection as a single document.
type Store interface {
	Load(ctx context.Context) ([]domain.Report, error)
	Save(ctx context.Context, reports []domain.Report) error
	// Mutate applies fn to the current collection and persists the result as
	// one serialized cycle. Returning an error from fn leaves the document as is.
	Mutate(ctx context.Context, fn func([]domain.Report) ([]domain.Report, error)) ([]domain.Report, error)
}

type documentStore struct {
	doc *docstore.Document[[]store.Report]
}

func NewStore(backend docstore.Backend, locks *docstore.Locker) (Store, error) {
	doc, err := docstore.NewDocument(backend, locks, DocumentName, func() []store.Report {
		return []store.Report{}
	})
	if err != nil {
		return nil, err
	}
	return &documentStore{doc: doc}, nil
}

func (s *documentStore) Load(ctx context.Context) ([]domain.Report, error) {
	records, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreReportsToDomain(records), nil
}

func (s *documentStore) Save(ctx context.Context, reports []domain.Report) error {
	return s.doc.Save(ctx, adapters.MapDomainReportsToStore(reports))
}

func (s *documentStore) Mutate(
	ctx context.Context,
	fn func([]domain.Report) ([]domain.Report, error),
) ([]domain.Report, error) {
	records, err := s.doc.Mutate(ctx, func(current []store.Report) ([]store.Report, error) {
		next, err := fn(adapters.MapStoreReportsToDomain(current))
		if err != nil {
			return nil, err
		}
		return adapters.MapDomainReportsToStore(next), nil
	})
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreReportsToDomain(records), nil
}
