package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/store/docstore"
	reportstore "github.com/de-tools/dashboard/pkg/store/reports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

type fixture struct {
	backend *docstore.MemoryBackend
	service Service
}

func setupFixture(t *testing.T) *fixture {
	backend := docstore.NewMemoryBackend()
	store, err := reportstore.NewStore(backend, docstore.NewLocker())
	require.NoError(t, err)

	clock := &fixedClock{now: time.UnixMilli(1700000000000)}
	ids := &TimeIDGenerator{Now: clock.Now, Suffix: func() string { return "0000beef" }}

	return &fixture{
		backend: backend,
		service: NewService(store, ids),
	}
}

func (f *fixture) raw(t *testing.T) string {
	data, err := f.backend.Read(context.Background(), reportstore.DocumentName)
	require.NoError(t, err)
	return string(data)
}

func TestService_ListEmpty(t *testing.T) {
	f := setupFixture(t)

	reports, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.Equal(t, "[]", f.raw(t))
}

func TestService_CreateAppendsWithFreshID(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, domain.ReportInput{Name: "Sales", EmbedURL: "https://app.powerbi.com/x"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.service.Create(ctx, domain.ReportInput{Name: "Ops", EmbedURL: "https://app.powerbi.com/y"})
	require.NoError(t, err)
	require.Len(t, second, 2)

	assert.Equal(t, first[0], second[0])
	assert.Equal(t, "Ops", second[1].Name)
	assert.NotEqual(t, second[0].ID, second[1].ID)

	listed, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, listed)
}

func TestService_CreateValidation(t *testing.T) {
	f := setupFixture(t)

	_, err := f.service.Create(context.Background(), domain.ReportInput{Name: "  ", EmbedURL: ""})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"name", "embedUrl"}, vErr.Fields)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, readErr := f.backend.Read(context.Background(), reportstore.DocumentName)
	assert.ErrorIs(t, readErr, docstore.ErrNotExist, "validation happens before storage is touched")
}

func TestService_Update(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, domain.ReportInput{Name: "Sales", EmbedURL: "https://app.powerbi.com/x"})
	require.NoError(t, err)
	id := created[0].ID

	updated, err := f.service.Update(ctx, id, domain.ReportInput{Name: "Sales2", EmbedURL: "https://app.powerbi.com/z"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Report{{ID: id, Name: "Sales2", EmbedURL: "https://app.powerbi.com/z"}}, updated)
}

func TestService_UpdateUnknownLeavesFileUntouched(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, domain.ReportInput{Name: "Sales", EmbedURL: "https://app.powerbi.com/x"})
	require.NoError(t, err)
	before := f.raw(t)

	_, err = f.service.Update(ctx, "missing", domain.ReportInput{Name: "X", EmbedURL: "https://x"})

	var nfErr *domain.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Report not found", nfErr.Error())
	assert.Equal(t, before, f.raw(t))
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, domain.ReportInput{Name: "Sales", EmbedURL: "https://app.powerbi.com/x"})
	require.NoError(t, err)

	remaining, err := f.service.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, created, remaining)

	remaining, err = f.service.Delete(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, "[]", f.raw(t))
}

func TestService_CreateCollisionGetsSuffix(t *testing.T) {
	backend := docstore.NewMemoryBackend()
	store, err := reportstore.NewStore(backend, docstore.NewLocker())
	require.NoError(t, err)

	frozen := time.UnixMilli(1700000000000)
	svc := NewService(store, &TimeIDGenerator{
		Now:    func() time.Time { return frozen },
		Suffix: func() string { return "0000beef" },
	})
	ctx := context.Background()

	_, err = svc.Create(ctx, domain.ReportInput{Name: "A", EmbedURL: "https://a"})
	require.NoError(t, err)
	reports, err := svc.Create(ctx, domain.ReportInput{Name: "B", EmbedURL: "https://b"})
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.Equal(t, "1700000000000", reports[0].ID)
	assert.Equal(t, "1700000000000-0000beef", reports[1].ID)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, reports []domain.Report) error {
	return m.Called(ctx, reports).Error(0)
}

func (m *mockStore) Mutate(
	ctx context.Context,
	fn func([]domain.Report) ([]domain.Report, error),
) ([]domain.Report, error) {
	args := m.Called(ctx, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func TestService_StorageErrorsPropagate(t *testing.T) {
	corrupt := errors.Join(docstore.ErrCorrupt, errors.New("unexpected end of JSON input"))

	store := new(mockStore)
	store.On("Load", mock.Anything).Return(nil, corrupt)
	store.On("Mutate", mock.Anything, mock.Anything).Return(nil, corrupt)
	svc := NewService(store, nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, docstore.ErrCorrupt)

	_, err = svc.Create(ctx, domain.ReportInput{Name: "A", EmbedURL: "https://a"})
	assert.ErrorIs(t, err, docstore.ErrCorrupt)

	_, err = svc.Delete(ctx, "1")
	assert.ErrorIs(t, err, docstore.ErrCorrupt)

	store.AssertExpectations(t)
}
