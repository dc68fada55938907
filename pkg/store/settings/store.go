package settings

import (
	"context"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/store/docstore"
)

// DocumentName is the name of the site configuration document.
const DocumentName = "config.json"

// Store persists the singleton config record. Writes always replace the
// whole record, so callers read-modify-write through Mutate.
type Store interface {
	Load(ctx context.Context) (domain.ConfigRecord, error)
	Save(ctx context.Context, record domain.ConfigRecord) error
	Mutate(ctx context.Context, fn func(domain.ConfigRecord) (domain.ConfigRecord, error)) (domain.ConfigRecord, error)
}

type documentStore struct {
	doc *docstore.Document[domain.ConfigRecord]
}

func NewStore(backend docstore.Backend, locks *docstore.Locker) (Store, error) {
	doc, err := docstore.NewDocument(backend, locks, DocumentName, domain.NewConfigRecord)
	if err != nil {
		return nil, err
	}
	return &documentStore{doc: doc}, nil
}

func (s *documentStore) Load(ctx context.Context) (domain.ConfigRecord, error) {
	record, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return normalize(record), nil
}

func (s *documentStore) Save(ctx context.Context, record domain.ConfigRecord) error {
	return s.doc.Save(ctx, normalize(record))
}

func (s *documentStore) Mutate(
	ctx context.Context,
	fn func(domain.ConfigRecord) (domain.ConfigRecord, error),
) (domain.ConfigRecord, error) {
	return s.doc.Mutate(ctx, func(current domain.ConfigRecord) (domain.ConfigRecord, error) {
		next, err := fn(normalize(current))
		if err != nil {
			return nil, err
		}
		return normalize(next), nil
	})
}

// normalize guarantees a non-nil record that always carries customLogo.
func normalize(record domain.ConfigRecord) domain.ConfigRecord {
	if record == nil {
		return domain.NewConfigRecord()
	}
	if _, ok := record[domain.CustomLogoKey].(string); !ok {
		record.SetCustomLogo("")
	}
	return record
}
