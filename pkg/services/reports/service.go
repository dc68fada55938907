package reports

import (
	"context"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/store/reports"
	"github.com/rs/zerolog"
)

// Service manages the reports collection. Every operation returns the whole
// collection as persisted after the operation.
type Service interface {
	List(ctx context.Context) ([]domain.Report, error)
	Create(ctx context.Context, in domain.ReportInput) ([]domain.Report, error)
	Update(ctx context.Context, id string, in domain.ReportInput) ([]domain.Report, error)
	Delete(ctx context.Context, id string) ([]domain.Report, error)
}

type defaultService struct {
	store reports.Store
	ids   IDGenerator
}

func NewService(store reports.Store, ids IDGenerator) Service {
	if ids == nil {
		ids = NewTimeIDGenerator()
	}
	return &defaultService{
		store: store,
		ids:   ids,
	}
}

func (s *defaultService) List(ctx context.Context) ([]domain.Report, error) {
	return s.store.Load(ctx)
}

func (s *defaultService) Create(ctx context.Context, in domain.ReportInput) ([]domain.Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created domain.Report
	updated, err := s.store.Mutate(ctx, func(current []domain.Report) ([]domain.Report, error) {
		taken := make(map[string]struct{}, len(current))
		for _, r := range current {
			taken[r.ID] = struct{}{}
		}

		created = domain.Report{
			ID: s.ids.NewID(func(id string) bool {
				_, ok := taken[id]
				return ok
			}),
			Name:     in.Name,
			EmbedURL: in.EmbedURL,
		}
		return append(current, created), nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", created.ID).
		Str("name", created.Name).
		Msg("report created")
	return updated, nil
}

func (s *defaultService) Update(ctx context.Context, id string, in domain.ReportInput) ([]domain.Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.Mutate(ctx, func(current []domain.Report) ([]domain.Report, error) {
		for i := range current {
			if current[i].ID == id {
				current[i].Name = in.Name
				current[i].EmbedURL = in.EmbedURL
				return current, nil
			}
		}
		return nil, &domain.NotFoundError{Kind: "Report", ID: id}
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("report_id", id).Msg("report updated")
	return updated, nil
}

// Delete removes every entry with id. Deleting an unknown id is not an error.
func (s *defaultService) Delete(ctx context.Context, id string) ([]domain.Report, error) {
	removed := 0
	updated, err := s.store.Mutate(ctx, func(current []domain.Report) ([]domain.Report, error) {
		kept := make([]domain.Report, 0, len(current))
		for _, r := range current {
			if r.ID == id {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", id).
		Int("removed", removed).
		Msg("report deleted")
	return updated, nil
}
