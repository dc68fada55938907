package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeIDGenerator(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	gen := &TimeIDGenerator{
		Now:    func() time.Time { return now },
		Suffix: func() string { return "deadbeef" },
	}

	t.Run("free id", func(t *testing.T) {
		id := gen.NewID(func(string) bool { return false })
		assert.Equal(t, "1700000000000", id)
	})

	t.Run("same millisecond collision", func(t *testing.T) {
		id := gen.NewID(func(id string) bool { return id == "1700000000000" })
		assert.Equal(t, "1700000000000-deadbeef", id)
	})
}

func TestTimeIDGenerator_DefaultSuffixIsRandom(t *testing.T) {
	a := randomSuffix()
	b := randomSuffix()

	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
