package flashcard

import (
	"crypto/rand"
	"io"
	"math/big"
	mathrand "math/rand"
)

// Picker chooses an index in [0, n). n is always positive.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int { return f(n) }

// CryptoPicker draws indexes from Reader, or crypto/rand when Reader is nil.
// If the read fails it draws from math/rand/v2 instead, so a broken entropy
// source never pins every deal to the first pair.
type CryptoPicker struct {
	Reader io.Reader
}

func (p CryptoPicker) Pick(n int) int {
	r := p.Reader
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return mathrand.Intn(n)
	}
	return int(v.Int64())
}
