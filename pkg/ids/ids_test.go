package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericWidth(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := Numeric(6, nil)
		require.Len(t, id, 6)
		assert.NotEqual(t, byte('0'), id[0], "leading zero would change the width")
		for _, r := range id {
			assert.True(t, r >= '0' && r <= '9', "id %q must be numeric", id)
		}
	}
}

func TestNumericAvoidsCollisions(t *testing.T) {
	// Leave a single free slot in a 1-digit space and demand it.
	taken := TakenSet([]string{"1", "2", "3", "4", "5", "6", "7", "8"})
	assert.Equal(t, "9", Numeric(1, taken))
}

func TestTakenSet(t *testing.T) {
	set := TakenSet([]string{"123", "456"})
	_, ok := set["123"]
	assert.True(t, ok)
	_, ok = set["789"]
	assert.False(t, ok)
}
