package flashcard

import (
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestCryptoPicker_BrokenReader(t *testing.T) {
	p := CryptoPicker{Reader: iotest.ErrReader(errors.New("entropy unavailable"))}

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		got := p.Pick(4)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 4)
		seen[got] = true
	}
	assert.Greater(t, len(seen), 1, "deals should not all land on one index")
}

func TestCryptoPicker_DefaultReader(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := CryptoPicker{}.Pick(3)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 3)
	}
}
