package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/chesscore/internal/types"
)

func TestMain(m *testing.M) {
	Init()
	m.Run()
}

func TestKingKnightAttacks(t *testing.T) {
	assert.Equal(t, 3, types.Popcount(King(types.SqA1)))
	assert.Equal(t, 8, types.Popcount(King(types.SqD4)))
	assert.Equal(t, 2, types.Popcount(Knight(types.SqA1)))
	assert.Equal(t, 8, types.Popcount(Knight(types.SqD4)))
}

func TestPawnAttacks(t *testing.T) {
	assert.Equal(t, types.Mask(types.SqD5)|types.Mask(types.SqF5), Pawn(types.White, types.SqE4))
	assert.Equal(t, types.Mask(types.SqD3)|types.Mask(types.SqF3), Pawn(types.Black, types.SqE4))
}

func TestRookBishopQueenAttacks(t *testing.T) {
	occ := types.Mask(types.SqD1) | types.Mask(types.SqD8) | types.Mask(types.SqA4) | types.Mask(types.SqH4)
	rookAtt := Rook(types.SqD4, occ)
	assert.True(t, rookAtt&types.Mask(types.SqD1) != 0)
	assert.True(t, rookAtt&types.Mask(types.SqD8) != 0)
	assert.False(t, rookAtt&types.Mask(types.SqA1) != 0)

	bishopAtt := Bishop(types.SqD4, types.BbZero)
	assert.True(t, bishopAtt&types.Mask(types.SqA1) != 0)
	assert.True(t, bishopAtt&types.Mask(types.SqH8) != 0)

	assert.Equal(t, Rook(types.SqD4, occ)|Bishop(types.SqD4, occ), Queen(types.SqD4, occ))
}

func TestInitializationOrderError(t *testing.T) {
	initDone = false
	defer func() { initDone = true }()
	assert.Panics(t, func() { King(types.SqA1) })
}

func TestPawnSpans(t *testing.T) {
	front := PawnFrontspan(types.White, types.SqE4)
	assert.True(t, front&types.Mask(types.SqE5) != 0)
	assert.True(t, front&types.Mask(types.SqE8) != 0)
	assert.False(t, front&types.Mask(types.SqE4) != 0)
}
