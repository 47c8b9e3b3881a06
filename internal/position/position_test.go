package position

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

func TestFenRoundTrip(t *testing.T) {
	p, err := FromFen(StartFen)
	assert.NoError(t, err)
	assert.Equal(t, StartFen, p.ToFen())
}

func TestMakeUnmakeQuietMoveRoundTrip(t *testing.T) {
	p, err := FromFen(StartFen)
	assert.NoError(t, err)
	before := p.ToFen()
	beforeKey := p.Key()

	m := types.NewMove(types.SqE2, types.SqE4, types.PtNone, types.MoveFlags{DoublePush: true})
	ok := p.MakeMove(m)
	assert.True(t, ok)
	assert.Equal(t, types.Black, p.SideToMove())
	assert.Equal(t, types.SqE3, p.EnPassantSquare())
	assert.NotEqual(t, beforeKey, p.Key())

	p.UnmakeMove()
	assert.Equal(t, before, p.ToFen())
	assert.Equal(t, beforeKey, p.Key())
}

func TestMakeMoveCapture(t *testing.T) {
	p, err := FromFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 1")
	assert.NoError(t, err)
	before := p.ToFen()

	m := types.NewMove(types.SqD4, types.SqE5, types.PtNone, types.MoveFlags{Capture: true})
	ok := p.MakeMove(m)
	assert.True(t, ok)
	assert.Equal(t, types.MakePiece(types.White, types.Pawn), p.Board.Piece(types.SqE5))
	assert.Equal(t, 0, p.HalfMoveClock())

	p.UnmakeMove()
	assert.Equal(t, before, p.ToFen())
}

func TestEnPassantCapture(t *testing.T) {
	p, err := FromFen("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1")
	assert.NoError(t, err)
	before := p.ToFen()

	m := types.NewMove(types.SqE5, types.SqD6, types.PtNone, types.MoveFlags{Capture: true, EnPassant: true})
	ok := p.MakeMove(m)
	assert.True(t, ok)
	assert.Equal(t, types.PieceNone, p.Board.Piece(types.SqD5))
	assert.Equal(t, types.MakePiece(types.White, types.Pawn), p.Board.Piece(types.SqD6))

	p.UnmakeMove()
	assert.Equal(t, before, p.ToFen())
	assert.Equal(t, types.MakePiece(types.Black, types.Pawn), p.Board.Piece(types.SqD5))
}

func TestCastlingKingside(t *testing.T) {
	p, err := FromFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	before := p.ToFen()

	m := types.NewMove(types.SqE1, types.SqG1, types.PtNone, types.MoveFlags{CastleK: true})
	ok := p.MakeMove(m)
	assert.True(t, ok)
	assert.Equal(t, types.MakePiece(types.White, types.King), p.Board.Piece(types.SqG1))
	assert.Equal(t, types.MakePiece(types.White, types.Rook), p.Board.Piece(types.SqF1))
	assert.False(t, p.CastlingRights().Has(types.WhiteOO))
	assert.False(t, p.CastlingRights().Has(types.WhiteOOO))

	p.UnmakeMove()
	assert.Equal(t, before, p.ToFen())
}

func TestIllegalMoveLeavesKingInCheckReturnsFalse(t *testing.T) {
	p, err := FromFen("4r3/8/8/8/8/8/4N3/4K3 w - - 0 1")
	assert.NoError(t, err)
	before := p.ToFen()

	m := types.NewMove(types.SqE2, types.SqC3, types.PtNone, types.MoveFlags{})
	ok := p.MakeMove(m)
	assert.False(t, ok)

	p.UnmakeMove()
	assert.Equal(t, before, p.ToFen())
}

func TestPromotion(t *testing.T) {
	p, err := FromFen("8/4P3/8/8/8/4k3/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	before := p.ToFen()

	m := types.NewMove(types.SqE7, types.SqE8, types.Queen, types.MoveFlags{Promotion: true})
	ok := p.MakeMove(m)
	assert.True(t, ok)
	assert.Equal(t, types.MakePiece(types.White, types.Queen), p.Board.Piece(types.SqE8))

	p.UnmakeMove()
	assert.Equal(t, before, p.ToFen())
	assert.Equal(t, types.MakePiece(types.White, types.Pawn), p.Board.Piece(types.SqE7))
}

func TestHalfMoveClockIncrementsOnQuietMove(t *testing.T) {
	p, err := FromFen("4k3/8/8/8/8/8/4K3/8 w - - 10 5")
	assert.NoError(t, err)
	m := types.NewMove(types.SqE2, types.SqD2, types.PtNone, types.MoveFlags{})
	p.MakeMove(m)
	assert.Equal(t, 11, p.HalfMoveClock())
}

func TestThreefoldRepetition(t *testing.T) {
	p, err := FromFen(StartFen)
	assert.NoError(t, err)

	moves := []types.Move{
		types.NewMove(types.SqB1, types.SqC3, types.PtNone, types.MoveFlags{}),
		types.NewMove(types.SqB8, types.SqC6, types.PtNone, types.MoveFlags{}),
		types.NewMove(types.SqC3, types.SqB1, types.PtNone, types.MoveFlags{}),
		types.NewMove(types.SqC6, types.SqB8, types.PtNone, types.MoveFlags{}),
	}
	for round := 0; round < 2; round++ {
		for _, m := range moves {
			ok := p.MakeMove(m)
			assert.True(t, ok)
		}
	}
	assert.Equal(t, 3, p.NumRepetitions())
}

func TestHasInsufficientMaterial(t *testing.T) {
	p, err := FromFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.HasInsufficientMaterial())

	p2, err := FromFen("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	assert.NoError(t, err)
	assert.False(t, p2.HasInsufficientMaterial())
}
