package settings

import (
	"context"
	"testing"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/store/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (Store, *docstore.MemoryBackend) {
	backend := docstore.NewMemoryBackend()
	s, err := NewStore(backend, docstore.NewLocker())
	require.NoError(t, err)
	return s, backend
}

func TestStore_LoadBootstrapsRecord(t *testing.T) {
	s, backend := setupStore(t)
	ctx := context.Background()

	record, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", record.CustomLogo())

	data, err := backend.Read(ctx, DocumentName)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customLogo":""}`, string(data))
}

func TestStore_MutatePreservesOtherKeys(t *testing.T) {
	s, backend := setupStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, DocumentName, []byte(`{"appName":"Home","pinAppsByDefault":true}`)))

	record, err := s.Mutate(ctx, func(r domain.ConfigRecord) (domain.ConfigRecord, error) {
		assert.Equal(t, "", r.CustomLogo())
		r.SetCustomLogo("1700000000000--logo.png")
		return r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "1700000000000--logo.png", record.CustomLogo())

	data, err := backend.Read(ctx, DocumentName)
	require.NoError(t, err)
	assert.JSONEq(t, `{"appName":"Home","pinAppsByDefault":true,"customLogo":"1700000000000--logo.png"}`, string(data))
}

func TestStore_LoadMalformed(t *testing.T) {
	s, backend := setupStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, DocumentName, []byte(`[1,2`)))

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, docstore.ErrCorrupt)
}
