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

package evaluator

import (
	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/board"
	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/types"
)

// guardValue sums the per-kind attacker weight of color c's pieces
// attacking sq. Unsigned: callers difference White's and Black's call to
// get the signed feature.
func guardValue(b *board.Board, sq types.Square, c types.Color) int16 {
	att := b.AttacksOn(sq) & b.Occupied(c)
	e := &config.Settings.Eval
	var v int16
	v += int16(types.Popcount(att&b.Pieces(types.Pawn))) * e.GuardWeightPawn
	v += int16(types.Popcount(att&b.Pieces(types.Knight))) * e.GuardWeightKnight
	v += int16(types.Popcount(att&b.Pieces(types.Bishop))) * e.GuardWeightBishop
	v += int16(types.Popcount(att&b.Pieces(types.Rook))) * e.GuardWeightRook
	v += int16(types.Popcount(att&b.Pieces(types.Queen))) * e.GuardWeightQueen
	v += int16(types.Popcount(att&b.Pieces(types.King))) * e.GuardWeightKing
	return v
}

// centerControl sums guard_value over {d4,e4,d5,e5} for color c's attackers.
func centerControl(b *board.Board, c types.Color) int16 {
	var v int16
	for _, sq := range centerSquares {
		v += guardValue(b, sq, c)
	}
	return v
}

// kingSafety is the (own defenders - enemy attackers) deficit at squares
// adjacent to c's king, clamped to non-positive so only under-defence is
// penalised.
func kingSafety(b *board.Board, c types.Color) int16 {
	var own, enemy int16
	for ring := attacks.King(b.KingSquare(c)); ring != 0; {
		sq, rest := types.Poplsb(ring)
		ring = rest
		own += guardValue(b, sq, c)
		enemy += guardValue(b, sq, c.Flip())
	}
	deficit := own - enemy
	if deficit > 0 {
		deficit = 0
	}
	return deficit
}

// development counts c's minor pieces on ranks 3-5 (White) / 4-6 (Black).
func development(b *board.Board, c types.Color) int16 {
	minors := b.PiecesOf(c, types.Knight) | b.PiecesOf(c, types.Bishop)
	var zone types.Bitboard
	if c == types.White {
		zone = types.RankBb(types.Rank3) | types.RankBb(types.Rank4) | types.RankBb(types.Rank5)
	} else {
		zone = types.RankBb(types.Rank4) | types.RankBb(types.Rank5) | types.RankBb(types.Rank6)
	}
	return int16(types.Popcount(minors & zone))
}

// edgeKnights counts c's knights on the A- or H-file.
func edgeKnights(b *board.Board, c types.Color) int16 {
	edge := types.FileBb(types.FileA) | types.FileBb(types.FileH)
	return int16(types.Popcount(b.PiecesOf(c, types.Knight) & edge))
}

// passedPawns counts c's passed pawns.
func passedPawns(b *board.Board, c types.Color) int16 {
	return int16(types.Popcount(b.Passers(c)))
}

// passerRankBonus sums (rank-1), mirrored for Black, over c's passers.
func passerRankBonus(b *board.Board, c types.Color) int16 {
	var v int16
	for p := b.Passers(c); p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		if c == types.White {
			v += int16(sq.RankOf())
		} else {
			v += int16(types.Rank8 - sq.RankOf())
		}
	}
	return v
}

// kingOnFirstRank reports (as 0/1) whether c's king sits on its own back rank.
func kingOnFirstRank(b *board.Board, c types.Color) int16 {
	if b.KingSquare(c).RankOf() == c.BackRank() {
		return 1
	}
	return 0
}

// pawnShield counts c's own-rank pawns (rank 2/7) in the king's attack set,
// when the king is on its back rank.
func pawnShield(b *board.Board, c types.Color) int16 {
	if b.KingSquare(c).RankOf() != c.BackRank() {
		return 0
	}
	ring := attacks.King(b.KingSquare(c))
	shieldRank := types.RankBb(c.PawnRank())
	return int16(types.Popcount(ring & b.PiecesOf(c, types.Pawn) & shieldRank))
}

// openFileRook counts c's rooks on a file with no pawns of either color.
func openFileRook(b *board.Board, c types.Color) int16 {
	return countOnOpenFile(b, b.PiecesOf(c, types.Rook))
}

// openFileQueen counts c's queens on a file with no pawns of either color.
func openFileQueen(b *board.Board, c types.Color) int16 {
	return countOnOpenFile(b, b.PiecesOf(c, types.Queen))
}

func countOnOpenFile(b *board.Board, pieces types.Bitboard) int16 {
	pawns := b.Pieces(types.Pawn)
	var v int16
	for p := pieces; p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		if types.FileBb(sq.FileOf())&pawns == 0 {
			v++
		}
	}
	return v
}

// isolatedPawns, backwardPawns, doubledPawns and pawnChains are computed
// outside the pawn cache only when the cache is disabled (evaluator.go);
// normally evaluatePawns in pawns.go folds them into one cached lookup.
func isolatedPawns(b *board.Board, c types.Color) int16 {
	return int16(types.Popcount(b.Isolated(c)))
}

func backwardPawns(b *board.Board, c types.Color) int16 {
	return int16(types.Popcount(b.Backward(c)))
}

func doubledPawns(b *board.Board, c types.Color) int16 {
	return int16(types.Popcount(b.Doubled(c)))
}

func pawnChains(b *board.Board, c types.Color) int16 {
	return int16(types.Popcount(b.PawnChains(c)))
}
