package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `json:"id"`
}

func emptyItems() []item { return []item{} }

func newItemsDoc(t *testing.T, backend Backend) *Document[[]item] {
	doc, err := NewDocument(backend, NewLocker(), "items.json", emptyItems)
	require.NoError(t, err)
	return doc
}

func TestDocument_LoadMaterializesMissing(t *testing.T) {
	backend := NewMemoryBackend()
	doc := newItemsDoc(t, backend)
	ctx := context.Background()

	items, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	data, err := backend.Read(ctx, "items.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDocument_LoadCorrupt(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, "items.json", []byte(`[{"id":`)))
	doc := newItemsDoc(t, backend)

	_, err := doc.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	data, err := backend.Read(ctx, "items.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":`, string(data), "corrupt content must not be reset")
}

func TestDocument_MutateErrorSkipsWrite(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, "items.json", []byte(`[{"id":"a"}]`)))
	doc := newItemsDoc(t, backend)
	boom := errors.New("boom")

	_, err := doc.Mutate(ctx, func(items []item) ([]item, error) {
		return append(items, item{ID: "b"}), boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := backend.Read(ctx, "items.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))
}

func TestDocument_MutateConcurrentNoLostUpdates(t *testing.T) {
	doc := newItemsDoc(t, NewMemoryBackend())
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := doc.Mutate(ctx, func(items []item) ([]item, error) {
				return append(items, item{ID: fmt.Sprintf("%d", i)}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, writers)
}

type failingBackend struct {
	*MemoryBackend
	err error
}

func (f *failingBackend) Write(context.Context, string, []byte) error {
	return f.err
}

func TestDocument_SaveFailurePropagates(t *testing.T) {
	diskFull := errors.New("no space left on device")
	backend := &failingBackend{MemoryBackend: NewMemoryBackend(), err: diskFull}
	doc := newItemsDoc(t, backend)

	err := doc.Save(context.Background(), []item{{ID: "a"}})
	assert.ErrorIs(t, err, diskFull)

	_, err = doc.Load(context.Background())
	assert.ErrorIs(t, err, diskFull, "bootstrap write failures surface too")
}

func TestNewDocument_Validation(t *testing.T) {
	_, err := NewDocument[[]item](nil, nil, "items.json", emptyItems)
	assert.Error(t, err)

	_, err = NewDocument(NewMemoryBackend(), nil, "../items.json", emptyItems)
	assert.Error(t, err)
}
