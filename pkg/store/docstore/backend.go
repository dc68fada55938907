package docstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrNotExist = errors.New("document does not exist")
	ErrCorrupt  = errors.New("document is malformed")
)

// Backend persists whole documents addressed by name. Write replaces the full
// content of the document; there are no partial updates.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// Transactor is implemented by backends that can run a read-modify-write cycle
// inside a single transaction. fn receives a context bound to that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid document name %q", name)
	}
	return nil
}
