package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPermanent(t *testing.T) {
	base := errors.New("bad payload")
	assert.False(t, IsPermanent(base))

	marked := Permanent(base)
	assert.True(t, IsPermanent(marked))
	assert.ErrorIs(t, marked, base)
	assert.Equal(t, "bad payload", marked.Error())

	wrapped := fmt.Errorf("handler: %w", marked)
	assert.True(t, IsPermanent(wrapped))

	assert.Nil(t, Permanent(nil))
}

func TestBackoff(t *testing.T) {
	initial := 500 * time.Millisecond
	max := 60 * time.Second

	assert.Equal(t, 500*time.Millisecond, Backoff(0, initial, max))
	assert.Equal(t, time.Second, Backoff(1, initial, max))
	assert.Equal(t, 8*time.Second, Backoff(4, initial, max))
	assert.Equal(t, max, Backoff(20, initial, max))
}
