package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

func TestMain(m *testing.M) {
	attacks.Init()
	zobrist.Init()
	m.Run()
}

func TestPlaceRemove(t *testing.T) {
	b := New()
	b.Place(types.SqE4, types.MakePiece(types.White, types.Pawn))
	assert.Equal(t, types.MakePiece(types.White, types.Pawn), b.Piece(types.SqE4))
	assert.True(t, b.OccupiedAll()&types.Mask(types.SqE4) != 0)
	mg, eg := b.Material(types.White)
	assert.Equal(t, 100, mg)
	assert.Equal(t, 100, eg)

	removed := b.Remove(types.SqE4)
	assert.Equal(t, types.MakePiece(types.White, types.Pawn), removed)
	assert.Equal(t, types.PieceNone, b.Piece(types.SqE4))
	assert.Equal(t, types.BbZero, b.OccupiedAll())
	mg, eg = b.Material(types.White)
	assert.Equal(t, 0, mg)
	assert.Equal(t, 0, eg)
}

func TestPlaceRemoveInverseKey(t *testing.T) {
	b := New()
	k0 := b.Key()
	b.Place(types.SqD4, types.MakePiece(types.Black, types.Knight))
	b.Remove(types.SqD4)
	assert.Equal(t, k0, b.Key())
}

func TestAttacksOn(t *testing.T) {
	b := New()
	b.Place(types.SqE1, types.MakePiece(types.White, types.King))
	b.Place(types.SqD2, types.MakePiece(types.White, types.Pawn))
	b.Place(types.SqE8, types.MakePiece(types.Black, types.King))
	assert.True(t, b.IsAttacked(types.SqE2, types.White))
	assert.True(t, b.IsAttacked(types.SqC3, types.White))
	assert.False(t, b.IsAttacked(types.SqA8, types.White))
}

func TestPassedIsolatedPawns(t *testing.T) {
	b := New()
	b.Place(types.SqE4, types.MakePiece(types.White, types.Pawn))
	assert.True(t, b.Passers(types.White)&types.Mask(types.SqE4) != 0)
	assert.True(t, b.Isolated(types.White)&types.Mask(types.SqE4) != 0)

	b.Place(types.SqE6, types.MakePiece(types.Black, types.Pawn))
	assert.False(t, b.Passers(types.White)&types.Mask(types.SqE4) != 0)
}

func TestDoubledPawns(t *testing.T) {
	b := New()
	b.Place(types.SqE2, types.MakePiece(types.White, types.Pawn))
	b.Place(types.SqE4, types.MakePiece(types.White, types.Pawn))
	doubled := b.Doubled(types.White)
	assert.Equal(t, 1, types.Popcount(doubled))
	assert.True(t, doubled&types.Mask(types.SqE4) != 0)
}
