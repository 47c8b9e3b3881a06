package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareFileRank(t *testing.T) {
	assert.Equal(t, FileE, SqE4.FileOf())
	assert.Equal(t, Rank4, SqE4.RankOf())
	assert.True(t, SqA1.IsValid())
	assert.False(t, SqNone.IsValid())
}

func TestMakeSquare(t *testing.T) {
	assert.Equal(t, SqE4, MakeSquare("e4"))
	assert.Equal(t, SqNone, MakeSquare("z9"))
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, "-", SqNone.String())
}

func TestSquareTo(t *testing.T) {
	assert.Equal(t, SqE5, SqE4.To(North))
	assert.Equal(t, SqNone, SqH4.To(East))
	assert.Equal(t, SqNone, SqA4.To(West))
	assert.Equal(t, SqF5, SqE4.To(Northeast))
}
