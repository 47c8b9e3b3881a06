package zobrist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/chesscore/internal/types"
)

func TestMain(m *testing.M) {
	Init()
	m.Run()
}

func TestKeysAreDistinct(t *testing.T) {
	a := Piece(types.SqE4, types.MakePiece(types.White, types.Pawn))
	b := Piece(types.SqE5, types.MakePiece(types.White, types.Pawn))
	assert.NotEqual(t, a, b)

	c := Piece(types.SqE4, types.MakePiece(types.Black, types.Pawn))
	assert.NotEqual(t, a, c)
}

func TestEnPassantNone(t *testing.T) {
	assert.Equal(t, Key(0), EnPassant(types.SqNone))
	assert.NotEqual(t, Key(0), EnPassant(types.SqE3))
}

func TestInitializationOrderError(t *testing.T) {
	initDone = false
	defer func() { initDone = true }()
	assert.Panics(t, func() { SideToMove() })
}
