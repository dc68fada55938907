package reports

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/store/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir   string
	store Store
}

func setupFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	backend, err := docstore.NewFileBackend(dir)
	require.NoError(t, err)

	s, err := NewStore(backend, docstore.NewLocker())
	require.NoError(t, err)

	return &fixture{dir: dir, store: s}
}

func (f *fixture) readFile(t *testing.T) string {
	data, err := os.ReadFile(filepath.Join(f.dir, DocumentName))
	require.NoError(t, err)
	return string(data)
}

func TestStore_LoadBootstrapsEmptyCollection(t *testing.T) {
	f := setupFixture(t)

	reports, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.Equal(t, "[]", f.readFile(t))
}

func TestStore_SaveAndLoad(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	want := []domain.Report{
		{ID: "1700000000000", Name: "Sales", EmbedURL: "https://app.powerbi.com/x"},
		{ID: "1700000000001", Name: "Ops", EmbedURL: "https://app.powerbi.com/y"},
	}
	require.NoError(t, f.store.Save(ctx, want))

	got, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.JSONEq(t, `[
		{"id":"1700000000000","name":"Sales","embedUrl":"https://app.powerbi.com/x"},
		{"id":"1700000000001","name":"Ops","embedUrl":"https://app.powerbi.com/y"}
	]`, f.readFile(t))
}

func TestStore_SaveEmptyWritesArray(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.store.Save(context.Background(), nil))
	assert.Equal(t, "[]", f.readFile(t))
}

func TestStore_LoadMalformedFails(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, DocumentName), []byte("{not json"), 0644))

	_, err := f.store.Load(context.Background())
	assert.ErrorIs(t, err, docstore.ErrCorrupt)
	assert.Equal(t, "{not json", f.readFile(t))
}
