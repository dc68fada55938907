package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("asset not found")

// Store holds uploaded binary assets addressed by a flat file name.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// DeleteResult is the outcome of BestEffortDelete. Callers are free to ignore it.
type DeleteResult struct {
	Name string
	Err  error
}

func (r DeleteResult) Deleted() bool {
	return r.Err == nil
}

// Missing reports whether the asset was already gone.
func (r DeleteResult) Missing() bool {
	return errors.Is(r.Err, ErrNotFound)
}

// BestEffortDelete removes name from s and reports the outcome instead of
// failing. A missing asset is a normal result.
func BestEffortDelete(ctx context.Context, s Store, name string) DeleteResult {
	if err := ValidateName(name); err != nil {
		return DeleteResult{Name: name, Err: err}
	}
	return DeleteResult{Name: name, Err: s.Delete(ctx, name)}
}

// ValidateName rejects names that could escape the asset namespace.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid asset name %q", name)
	}
	return nil
}
