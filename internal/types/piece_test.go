package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePiece(t *testing.T) {
	wn := MakePiece(White, Knight)
	assert.Equal(t, White, wn.ColorOf())
	assert.Equal(t, Knight, wn.TypeOf())
	assert.Equal(t, "N", wn.String())

	bq := MakePiece(Black, Queen)
	assert.Equal(t, Black, bq.ColorOf())
	assert.Equal(t, Queen, bq.TypeOf())
	assert.Equal(t, "q", bq.String())
}

func TestPieceValue(t *testing.T) {
	assert.Equal(t, 100, MakePiece(White, Pawn).ValueOf())
	assert.Equal(t, -100, MakePiece(Black, Pawn).ValueOf())
}
