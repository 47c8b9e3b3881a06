// Package position wraps a Board with side-to-move, castling rights,
// en-passant square, halfmove clock and a stack of Ply history frames.
// MakeMove and UnmakeMove are exact inverses down to the Zobrist key.
package position

import (
	"github.com/corvidchess/chesscore/internal/assert"
	"github.com/corvidchess/chesscore/internal/board"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

// Position owns a Board, side-to-move, and a stack of Ply frames. plies[0]
// always holds the root position (before any move); plies[plyIdx] is the
// frame describing the position right now.
type Position struct {
	Board *board.Board

	sideToMove types.Color

	castlingRights types.CastlingRights
	epSquare       types.Square
	halfMoveClock  int
	fullMoveNumber int

	plies  [maxPly]Ply
	plyIdx int
}

// NewStandard returns a Position at the standard chess starting array.
func NewStandard() *Position {
	p, _ := FromFen(StartFen)
	return p
}

// SideToMove returns the color on move.
func (p *Position) SideToMove() types.Color { return p.sideToMove }

// CastlingRights returns the current castling rights.
func (p *Position) CastlingRights() types.CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en-passant target, or SqNone.
func (p *Position) EnPassantSquare() types.Square { return p.epSquare }

// HalfMoveClock returns the current fifty-move-rule counter.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the current full move number.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Key returns the full position key (board + side-to-move + castle + ep).
func (p *Position) Key() zobrist.Key { return p.plies[p.plyIdx].Key }

// Ply returns how many moves have been made from the root.
func (p *Position) Ply() int { return p.plyIdx }

// LastMove returns the move most recently made, or MoveNone at the root.
func (p *Position) LastMove() types.Move { return p.plies[p.plyIdx].Move }

// HasCheck reports whether the side to move is in check.
func (p *Position) HasCheck() bool { return p.plies[p.plyIdx].InCheck }

// IsAttacked reports whether sq is attacked by color by.
func (p *Position) IsAttacked(sq types.Square, by types.Color) bool {
	return p.Board.IsAttacked(sq, by)
}

var castlingRightsBySquare = buildCastlingRightsBySquare()

func buildCastlingRightsBySquare() [types.SqLength]types.CastlingRights {
	var t [types.SqLength]types.CastlingRights
	t[types.SqE1] = types.WhiteOO | types.WhiteOOO
	t[types.SqA1] = types.WhiteOOO
	t[types.SqH1] = types.WhiteOO
	t[types.SqE8] = types.BlackOO | types.BlackOOO
	t[types.SqA8] = types.BlackOOO
	t[types.SqH8] = types.BlackOO
	return t
}

// composeKey folds castle/ep/side-to-move onto the Board's own key.
func (p *Position) composeKey(cr types.CastlingRights, ep types.Square, stm types.Color) zobrist.Key {
	k := p.Board.Key() ^ zobrist.Castle(cr) ^ zobrist.EnPassant(ep)
	if stm == types.Black {
		k ^= zobrist.SideToMove()
	}
	return k
}

// refreshRootFrame (re)computes plies[0] from the position's current
// fields; called once after a fresh Board is built (FromFen).
func (p *Position) refreshRootFrame() {
	p.plies[0] = Ply{
		Move:           types.MoveNone,
		CapturedPiece:  types.PieceNone,
		CapturedSquare: types.SqNone,
		CastlingRights: p.castlingRights,
		EpSquare:       p.epSquare,
		HalfMoveClock:  p.halfMoveClock,
		FullMoveNumber: p.fullMoveNumber,
		Key:            p.composeKey(p.castlingRights, p.epSquare, p.sideToMove),
		InCheck:        p.Board.IsAttacked(p.Board.KingSquare(p.sideToMove), p.sideToMove.Flip()),
	}
	p.plyIdx = 0
}

// MakeMove applies m to the position. Returns false if the move leaves the
// mover's own king in check (illegal); the frame is still pushed, so the
// caller must pair every call with UnmakeMove regardless of the result.
func (p *Position) MakeMove(m types.Move) bool {
	top := p.plies[p.plyIdx]
	next := &p.plies[p.plyIdx+1]

	// Step 1: duplicate the top frame into the new one.
	*next = top

	// Step 2: clear capture/castle/ep tags; clear ep_square.
	next.CapturedPiece = types.PieceNone
	next.CapturedSquare = types.SqNone
	next.WasCastle = false
	next.WasEnPassant = false
	next.EpSquare = types.SqNone
	next.Move = m

	// Step 3: Black to move -> increment fullmove number.
	if p.sideToMove == types.Black {
		next.FullMoveNumber++
	}
	// Step 4: increment halfmove clock.
	next.HalfMoveClock++

	fromSq, toSq := m.From(), m.To()

	// Step 5: remove piece from source, cache as mover.
	mover := p.Board.Remove(fromSq)
	if assert.DEBUG {
		assert.Assert(mover.ColorOf() == p.sideToMove,
			"MakeMove %s: mover %s does not belong to side to move %s", m.String(), mover.String(), p.sideToMove.String())
	}

	// Step 6: mover is Pawn -> zero halfmove clock.
	if mover.TypeOf() == types.Pawn {
		next.HalfMoveClock = 0
	}

	// Step 7: en-passant capture.
	if m.IsEnPassant() {
		capSq := toSq.To(p.sideToMove.Flip().PushDirection())
		next.CapturedPiece = p.Board.Remove(capSq)
		next.CapturedSquare = capSq
		next.WasCastle = false
		next.WasEnPassant = true
		next.HalfMoveClock = 0
	}

	// Step 8: castling — move the rook to its castled square.
	if m.IsCastleK() || m.IsCastleQ() {
		doCastleRookMove(p.Board, toSq)
		next.WasCastle = true
	}

	// Step 9/10: capture or quiet placement of the mover.
	if target := p.Board.Piece(toSq); target != types.PieceNone {
		if assert.DEBUG {
			assert.Assert(target.TypeOf() != types.King, "MakeMove %s: king capture", m.String())
		}
		next.CapturedPiece = p.Board.Remove(toSq)
		next.CapturedSquare = toSq
		next.HalfMoveClock = 0
		p.Board.Place(toSq, mover)
	} else {
		p.Board.Place(toSq, mover)
	}

	// Step 11: promotion.
	if m.IsPromotion() {
		p.Board.Replace(toSq, types.MakePiece(p.sideToMove, m.PromotionType()))
	}

	// Step 12: mover is King -> revoke both castling rights of that color.
	if mover.TypeOf() == types.King {
		if p.sideToMove == types.White {
			next.CastlingRights = next.CastlingRights.Remove(types.CastlingWhite)
		} else {
			next.CastlingRights = next.CastlingRights.Remove(types.CastlingBlack)
		}
	}

	// Step 13: revoke rights for any of the six castling-relevant squares
	// touched by this move.
	next.CastlingRights = next.CastlingRights.Remove(castlingRightsBySquare[fromSq] | castlingRightsBySquare[toSq])

	// Step 14: pawn double push -> set ep_square.
	if m.IsDoublePush() {
		next.EpSquare = toSq.To(p.sideToMove.Flip().PushDirection())
	}

	// Step 15: flip side-to-move.
	p.sideToMove = p.sideToMove.Flip()

	// Step 16: recompute the composed key for this frame.
	next.Key = p.composeKey(next.CastlingRights, next.EpSquare, p.sideToMove)

	p.castlingRights = next.CastlingRights
	p.epSquare = next.EpSquare
	p.halfMoveClock = next.HalfMoveClock
	p.fullMoveNumber = next.FullMoveNumber
	p.plyIdx++

	// Step 17: just-moved side's king attacked -> illegal.
	if p.Board.IsAttacked(p.Board.KingSquare(p.sideToMove.Flip()), p.sideToMove) {
		return false
	}

	// Step 18: compute in-check for the new side to move.
	next.InCheck = p.Board.IsAttacked(p.Board.KingSquare(p.sideToMove), p.sideToMove.Flip())
	return true
}

// UnmakeMove is the exact inverse of MakeMove, including for the case
// where MakeMove just returned false.
func (p *Position) UnmakeMove() {
	frame := p.plies[p.plyIdx]
	p.plyIdx--
	m := frame.Move

	moverColor := p.sideToMove.Flip() // the side that made the undone move
	p.sideToMove = moverColor

	fromSq, toSq := m.From(), m.To()

	if m.IsPromotion() {
		p.Board.Remove(toSq)
		p.Board.Place(fromSq, types.MakePiece(moverColor, types.Pawn))
	} else {
		mover := p.Board.Remove(toSq)
		p.Board.Place(fromSq, mover)
	}

	if frame.WasCastle {
		undoCastleRookMove(p.Board, toSq)
	}
	if frame.CapturedPiece != types.PieceNone {
		p.Board.Place(frame.CapturedSquare, frame.CapturedPiece)
	}

	cur := p.plies[p.plyIdx]
	p.castlingRights = cur.CastlingRights
	p.epSquare = cur.EpSquare
	p.halfMoveClock = cur.HalfMoveClock
	p.fullMoveNumber = cur.FullMoveNumber
}

func doCastleRookMove(b *board.Board, kingTo types.Square) {
	switch kingTo {
	case types.SqG1:
		b.Place(types.SqF1, b.Remove(types.SqH1))
	case types.SqC1:
		b.Place(types.SqD1, b.Remove(types.SqA1))
	case types.SqG8:
		b.Place(types.SqF8, b.Remove(types.SqH8))
	case types.SqC8:
		b.Place(types.SqD8, b.Remove(types.SqA8))
	}
}

func undoCastleRookMove(b *board.Board, kingTo types.Square) {
	switch kingTo {
	case types.SqG1:
		b.Place(types.SqH1, b.Remove(types.SqF1))
	case types.SqC1:
		b.Place(types.SqA1, b.Remove(types.SqD1))
	case types.SqG8:
		b.Place(types.SqH8, b.Remove(types.SqF8))
	case types.SqC8:
		b.Place(types.SqA8, b.Remove(types.SqD8))
	}
}

// MakeNullMove flips the side to move without moving a piece, clearing
// en-passant rights. Neither search driver currently uses it; neither
// does null-move pruning.
func (p *Position) MakeNullMove() {
	top := p.plies[p.plyIdx]
	next := &p.plies[p.plyIdx+1]
	*next = top
	next.Move = types.MoveNone
	next.CapturedPiece = types.PieceNone
	next.CapturedSquare = types.SqNone
	next.WasCastle = false
	next.WasEnPassant = false
	next.EpSquare = types.SqNone
	if p.sideToMove == types.Black {
		next.FullMoveNumber++
	}
	next.HalfMoveClock++

	p.sideToMove = p.sideToMove.Flip()
	next.Key = p.composeKey(next.CastlingRights, next.EpSquare, p.sideToMove)
	next.InCheck = p.Board.IsAttacked(p.Board.KingSquare(p.sideToMove), p.sideToMove.Flip())

	p.castlingRights = next.CastlingRights
	p.epSquare = next.EpSquare
	p.halfMoveClock = next.HalfMoveClock
	p.fullMoveNumber = next.FullMoveNumber
	p.plyIdx++
}

// UnmakeNullMove is MakeNullMove's inverse.
func (p *Position) UnmakeNullMove() {
	p.plyIdx--
	p.sideToMove = p.sideToMove.Flip()
	cur := p.plies[p.plyIdx]
	p.castlingRights = cur.CastlingRights
	p.epSquare = cur.EpSquare
	p.halfMoveClock = cur.HalfMoveClock
	p.fullMoveNumber = cur.FullMoveNumber
}

// NumRepetitions counts frames (root included) whose key matches the
// current key; a repetition for draw purposes is three such matches.
// The halfmove clock bounds how far back repeats can reach, since it
// resets on every irreversible move.
func (p *Position) NumRepetitions() int {
	cur := p.plies[p.plyIdx].Key
	limit := p.plyIdx - p.halfMoveClock
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := p.plyIdx; i >= limit; i-- {
		if p.plies[i].Key == cur {
			count++
		}
	}
	return count
}

// Clone returns an independent deep copy of p: a fresh Board value and a
// copy of the full ply stack, sharing nothing with p. Used to hand each
// Lazy-SMP search worker its own private root position.
func (p *Position) Clone() *Position {
	clone := *p
	board := *p.Board
	clone.Board = &board
	return &clone
}

// HasInsufficientMaterial reports a dead-draw material configuration:
// no pawns, rooks or queens, and at most one minor piece on each side.
func (p *Position) HasInsufficientMaterial() bool {
	if p.Board.Pieces(types.Pawn) != 0 || p.Board.Pieces(types.Rook) != 0 || p.Board.Pieces(types.Queen) != 0 {
		return false
	}
	wMinors := types.Popcount(p.Board.PiecesOf(types.White, types.Knight) | p.Board.PiecesOf(types.White, types.Bishop))
	bMinors := types.Popcount(p.Board.PiecesOf(types.Black, types.Knight) | p.Board.PiecesOf(types.Black, types.Bishop))
	return wMinors <= 1 && bMinors <= 1
}
