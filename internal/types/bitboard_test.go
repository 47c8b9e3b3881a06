package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShift(t *testing.T) {
	assert.Equal(t, Mask(SqE5), Shift(Mask(SqE4), North))
	assert.Equal(t, BbZero, Shift(Mask(SqH4), East))
	assert.Equal(t, BbZero, Shift(Mask(SqA4), West))
}

func TestPopcountLsb(t *testing.T) {
	b := Mask(SqA1) | Mask(SqH8) | Mask(SqD4)
	assert.Equal(t, 3, Popcount(b))
	sq, rest := Poplsb(b)
	assert.Equal(t, SqA1, sq)
	assert.Equal(t, 2, Popcount(rest))
}

func TestBetween(t *testing.T) {
	assert.Equal(t, Mask(SqE2)|Mask(SqE3), Between(SqE1, SqE4))
	assert.Equal(t, BbZero, Between(SqA1, SqB3))
	assert.Equal(t, BbZero, Between(SqA1, SqA1.To(North)))
}
