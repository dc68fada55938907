package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/dashboard/pkg/store/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockBackend(t *testing.T) (*DocumentBackend, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	backend, err := NewDocumentBackend(db)
	require.NoError(t, err)
	return backend, mock
}

func TestDocumentBackend_Read(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("powerbi.json").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`[]`)))

	data, err := backend.Read(context.Background(), "powerbi.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentBackend_ReadMissing(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("config.json").
		WillReturnError(sql.ErrNoRows)

	_, err := backend.Read(context.Background(), "config.json")
	assert.ErrorIs(t, err, docstore.ErrNotExist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentBackend_Write(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentQuery)).
		WithArgs("powerbi.json", []byte(`[{"id":"1"}]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := backend.Write(context.Background(), "powerbi.json", []byte(`[{"id":"1"}]`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentBackend_MutateRunsInTransaction(t *testing.T) {
	backend, mock := newMockBackend(t)
	doc, err := docstore.NewDocument(backend, nil, "powerbi.json", func() []string { return []string{} })
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("powerbi.json").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`["a"]`)))
	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentQuery)).
		WithArgs("powerbi.json", []byte(`["a","b"]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := doc.Mutate(context.Background(), func(v []string) ([]string, error) {
		return append(v, "b"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentBackend_MutateRollsBackOnError(t *testing.T) {
	backend, mock := newMockBackend(t)
	doc, err := docstore.NewDocument(backend, nil, "powerbi.json", func() []string { return []string{} })
	require.NoError(t, err)
	notFound := errors.New("report not found")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("powerbi.json").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`["a"]`)))
	mock.ExpectRollback()

	_, err = doc.Mutate(context.Background(), func(v []string) ([]string, error) {
		return nil, notFound
	})
	assert.ErrorIs(t, err, notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDocumentBackend_NilDB(t *testing.T) {
	_, err := NewDocumentBackend(nil)
	assert.Error(t, err)
}
