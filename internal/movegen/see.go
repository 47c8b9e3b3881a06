//
// chesscore - a chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package movegen

import (
	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/board"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
)

// lvaOrder is the least-valuable-attacker scan order:
// Pawn, Bishop, Knight, Rook, Queen, King. This is deliberately NOT
// types.PieceType's own ordinal order (Pawn, Knight, Bishop, Rook, Queen,
// King) - SEE swaps bishop and knight relative to material rank.
var lvaOrder = [6]types.PieceType{
	types.Pawn, types.Bishop, types.Knight, types.Rook, types.Queen, types.King,
}

// See runs static exchange evaluation on move m: simulate the capture,
// then repeatedly ask "if the other side recaptures with its least
// valuable attacker, who comes out ahead", mutating only local bitboards
// (never the real board) and returning the material balance from the
// moving side's perspective, in middlegame piece values.
func See(p *position.Position, m types.Move) types.Value {
	b := p.Board

	// An en-passant capture is always preceded by a non-capturing pawn
	// push, so it is always a clean win of a pawn; short-circuit rather
	// than special-casing the swap loop's target-square bookkeeping.
	if m.IsEnPassant() {
		return types.Value(types.Pawn.ValueOf())
	}

	fromSq, toSq := m.From(), m.To()
	occ := b.OccupiedAll()
	attackerSet := attackersTo(b, toSq, occ)

	var gain [32]types.Value
	ply := 0
	gain[0] = types.Value(b.Piece(toSq).TypeOf().ValueOf())
	movedPt := b.Piece(fromSq).TypeOf()

	for {
		ply++
		if m.IsPromotion() && ply == 1 {
			gain[ply] = types.Value(m.PromotionType().ValueOf()-types.Pawn.ValueOf()) - gain[ply-1]
		} else {
			gain[ply] = types.Value(movedPt.ValueOf()) - gain[ply-1]
		}
		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		occ &^= types.Mask(fromSq)
		attackerSet &^= types.Mask(fromSq)
		attackerSet |= attackersTo(b, toSq, occ) & occ

		side := b.Piece(fromSq).ColorOf().Flip()
		nextFrom, nextPt := leastValuableAttacker(b, attackerSet, side)
		if nextFrom == types.SqNone {
			break
		}
		fromSq, movedPt = nextFrom, nextPt
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
		ply--
	}
	return gain[0]
}

// attackersTo returns every piece of either colour attacking sq given a
// (possibly hypothetical) occupancy, the same symmetric computation as
// Board.AttacksOn but parameterised on occ so SEE can reveal x-ray
// attackers as pieces are removed from the exchange.
func attackersTo(b *board.Board, sq types.Square, occ types.Bitboard) types.Bitboard {
	var att types.Bitboard
	att |= attacks.Pawn(types.Black, sq) & b.PiecesOf(types.White, types.Pawn)
	att |= attacks.Pawn(types.White, sq) & b.PiecesOf(types.Black, types.Pawn)
	att |= attacks.Knight(sq) & (b.PiecesOf(types.White, types.Knight) | b.PiecesOf(types.Black, types.Knight))
	att |= attacks.King(sq) & (b.PiecesOf(types.White, types.King) | b.PiecesOf(types.Black, types.King))
	att |= attacks.Bishop(sq, occ) & (b.PiecesOf(types.White, types.Bishop) | b.PiecesOf(types.Black, types.Bishop) |
		b.PiecesOf(types.White, types.Queen) | b.PiecesOf(types.Black, types.Queen))
	att |= attacks.Rook(sq, occ) & (b.PiecesOf(types.White, types.Rook) | b.PiecesOf(types.Black, types.Rook) |
		b.PiecesOf(types.White, types.Queen) | b.PiecesOf(types.Black, types.Queen))
	return att & occ
}

// leastValuableAttacker returns the attacker of colour side in attackers
// with the lowest lvaOrder rank, breaking ties by least-significant square.
func leastValuableAttacker(b *board.Board, attackers types.Bitboard, side types.Color) (types.Square, types.PieceType) {
	for _, pt := range lvaOrder {
		if bb := attackers & b.PiecesOf(side, pt); bb != 0 {
			return types.Getlsb(bb), pt
		}
	}
	return types.SqNone, types.PtNone
}

func maxValue(a, b types.Value) types.Value {
	if a > b {
		return a
	}
	return b
}
