package reports

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces a fresh report id. taken reports whether an id is
// already in use by the collection.
type IDGenerator interface {
	NewID(taken func(id string) bool) string
}

// TimeIDGenerator issues unix-millisecond ids, the format existing collections
// already use. An id colliding with an existing one gets a random suffix.
type TimeIDGenerator struct {
	Now    func() time.Time
	Suffix func() string
}

func NewTimeIDGenerator() *TimeIDGenerator {
	return &TimeIDGenerator{
		Now:    time.Now,
		Suffix: randomSuffix,
	}
}

func (g *TimeIDGenerator) NewID(taken func(id string) bool) string {
	id := strconv.FormatInt(g.Now().UnixMilli(), 10)
	for taken(id) {
		id = strconv.FormatInt(g.Now().UnixMilli(), 10) + "-" + g.Suffix()
	}
	return id
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
