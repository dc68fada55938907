package logo

import (
	"context"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/store/assets"
	"github.com/de-tools/dashboard/pkg/store/settings"
	"github.com/rs/zerolog"
)

// Service keeps the customLogo field of the config record in step with the
// single logo asset on disk.
type Service interface {
	Config(ctx context.Context) (domain.ConfigRecord, error)
	// Upload points customLogo at an already stored asset and removes the
	// previous one.
	Upload(ctx context.Context, assetName string) (domain.ConfigRecord, error)
	Delete(ctx context.Context) (domain.ConfigRecord, error)
}

type defaultService struct {
	settings settings.Store
	assets   assets.Store
}

func NewService(settings settings.Store, assets assets.Store) Service {
	return &defaultService{
		settings: settings,
		assets:   assets,
	}
}

func (s *defaultService) Config(ctx context.Context) (domain.ConfigRecord, error) {
	return s.settings.Load(ctx)
}

func (s *defaultService) Upload(ctx context.Context, assetName string) (domain.ConfigRecord, error) {
	if err := assets.ValidateName(assetName); err != nil {
		return nil, err
	}

	record, err := s.settings.Mutate(ctx, func(record domain.ConfigRecord) (domain.ConfigRecord, error) {
		if previous := record.CustomLogo(); previous != "" && previous != assetName {
			s.discard(ctx, previous)
		}
		record.SetCustomLogo(assetName)
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("asset", assetName).Msg("logo replaced")
	return record, nil
}

func (s *defaultService) Delete(ctx context.Context) (domain.ConfigRecord, error) {
	record, err := s.settings.Mutate(ctx, func(record domain.ConfigRecord) (domain.ConfigRecord, error) {
		if previous := record.CustomLogo(); previous != "" {
			s.discard(ctx, previous)
		}
		record.SetCustomLogo("")
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Msg("logo removed")
	return record, nil
}

// discard removes an asset that is no longer referenced. The outcome never
// affects the calling operation.
func (s *defaultService) discard(ctx context.Context, name string) {
	res := assets.BestEffortDelete(ctx, s.assets, name)
	if res.Err == nil {
		return
	}
	zerolog.Ctx(ctx).Debug().
		Err(res.Err).
		Str("asset", res.Name).
		Bool("missing", res.Missing()).
		Msg("previous logo asset not removed")
}
