package export

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Notifier prints widget notifications and remembers the most recent failure.
type Notifier struct {
	writer io.Writer
	err    error
}

func NewNotifier(writer io.Writer) *Notifier {
	if writer == nil {
		writer = os.Stdout
	}
	return &Notifier{writer: writer}
}

func (n *Notifier) Success(message string) {
	fmt.Fprintln(n.writer, message)
}

func (n *Notifier) Error(message string) {
	n.err = errors.New(message)
}

// Err returns the last failure notified, if any.
func (n *Notifier) Err() error {
	return n.err
}
