package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Document is a typed view over one named document of a Backend.
type Document[T any] struct {
	backend Backend
	locks   *Locker
	name    string
	initial func() T
}

// NewDocument binds name on backend. initial produces the value written when
// the document is first read and does not exist yet.
func NewDocument[T any](backend Backend, locks *Locker, name string, initial func() T) (*Document[T], error) {
	if backend == nil {
		return nil, fmt.Errorf("document backend is nil")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if locks == nil {
		locks = NewLocker()
	}
	return &Document[T]{
		backend: backend,
		locks:   locks,
		name:    name,
		initial: initial,
	}, nil
}

func (d *Document[T]) Name() string {
	return d.name
}

// Load returns the persisted value. A missing document is materialized with
// the initial value before returning it.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	unlock := d.locks.Lock(d.name)
	defer unlock()

	return d.load(ctx)
}

// Save overwrites the document with v.
func (d *Document[T]) Save(ctx context.Context, v T) error {
	unlock := d.locks.Lock(d.name)
	defer unlock()

	return d.save(ctx, v)
}

// Mutate runs load, fn and save while holding the document lock. When fn
// returns an error nothing is written and the error is returned as is.
func (d *Document[T]) Mutate(ctx context.Context, fn func(T) (T, error)) (T, error) {
	unlock := d.locks.Lock(d.name)
	defer unlock()

	var result T
	cycle := func(ctx context.Context) error {
		current, err := d.load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := d.save(ctx, next); err != nil {
			return err
		}
		result = next
		return nil
	}

	var err error
	if tx, ok := d.backend.(Transactor); ok {
		err = tx.WithinTx(ctx, cycle)
	} else {
		err = cycle(ctx)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (d *Document[T]) load(ctx context.Context) (T, error) {
	var v T

	data, err := d.backend.Read(ctx, d.name)
	if errors.Is(err, ErrNotExist) {
		v = d.initial()
		if err := d.save(ctx, v); err != nil {
			return v, err
		}
		return v, nil
	}
	if err != nil {
		return v, err
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrCorrupt, d.name, err)
	}
	return v, nil
}

func (d *Document[T]) save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.name, err)
	}
	if err := d.backend.Write(ctx, d.name, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", d.name, err)
	}
	return nil
}
