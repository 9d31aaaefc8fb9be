package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	errBookMissing := New(ErrNotFound, "book not found")

	assert.Equal(t, "book not found", errBookMissing.Error())
	assert.True(t, errors.Is(errBookMissing, ErrNotFound))
	assert.False(t, errors.Is(errBookMissing, ErrConflict))

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("get book 7: %w", errBookMissing)
		assert.True(t, errors.Is(err, errBookMissing))
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("known", func(t *testing.T) {
		assert.True(t, Known(fmt.Errorf("issue: %w", errBookMissing)))
		assert.True(t, Known(ErrLimitExceeded))
		assert.False(t, Known(errors.New("connection reset")))
		assert.False(t, Known(nil))
	})

	t.Run("distinct sentinels of one kind", func(t *testing.T) {
		other := New(ErrNotFound, "reader not found")
		assert.False(t, errors.Is(other, errBookMissing))
	})
}
