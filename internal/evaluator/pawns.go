/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package evaluator

import (
	"github.com/corvidchess/chesscore/internal/board"
	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

// evaluatePawns folds the four pure pawn-structure features (isolated,
// backward, doubled, chains) into a single cache lookup keyed by the
// position's pawn-only Zobrist key, since none of them depend on
// anything but pawn placement.
func (e *Evaluator) evaluatePawns() types.Score {
	b := e.position.Board
	key := pawnKey(b)

	if entry := e.pawnCache.getEntry(key); entry != nil {
		return entry.score
	}

	var s types.Score
	addPawnFeature(&s, b, isolatedPawns, config.Settings.Eval.IsolatedPawnMg, config.Settings.Eval.IsolatedPawnEg)
	addPawnFeature(&s, b, backwardPawns, config.Settings.Eval.BackwardPawnMg, config.Settings.Eval.BackwardPawnEg)
	addPawnFeature(&s, b, doubledPawns, config.Settings.Eval.DoubledPawnMg, config.Settings.Eval.DoubledPawnEg)
	addPawnFeature(&s, b, pawnChains, config.Settings.Eval.PawnChainMg, config.Settings.Eval.PawnChainEg)

	e.pawnCache.put(key, s)
	return s
}

func addPawnFeature(s *types.Score, b *board.Board, f featureFn, mg, eg int16) {
	raw := f(b, types.White) - f(b, types.Black)
	s.MidGameValue += raw * mg
	s.EndGameValue += raw * eg
}

// pawnKey hashes only the pawns currently on the board. Recomputed on
// every cache miss rather than tracked incrementally on Position; nothing
// else needs a pawn-only key and pawn counts per position are small (at
// most 16).
func pawnKey(b *board.Board) zobrist.Key {
	var k zobrist.Key
	for p := b.Pieces(types.Pawn); p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		k ^= zobrist.Piece(sq, b.Piece(sq))
	}
	return k
}
