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

package search

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// BestMoveFunc is invoked exactly once per completed search.
type BestMoveFunc func(move types.Move)

// InfoFunc is invoked zero or more times during a search to report
// progress.
type InfoFunc func(info SearchInfo)

// SearchInfo is one progress snapshot published during a search.
type SearchInfo struct {
	Depth      int
	Nodes      uint64
	ElapsedMs  int64
	Nps        uint64
	SideToMove types.Color

	// ScoreCp is the score in centipawns from White's point of view -
	// the one place a search value is sign-flipped.
	ScoreCp int

	// MateScore is nonzero only when the score is a forced mate: the
	// number of plies to mate, positive if the side to move delivers
	// it, negative if it is delivered against them. 0 otherwise.
	MateScore int

	Pv []types.Move
}

// String renders a one-line UCI-ish progress report, used when no
// InfoFunc is registered.
func (si SearchInfo) String() string {
	var pv strings.Builder
	for i, m := range si.Pv {
		if i > 0 {
			pv.WriteByte(' ')
		}
		pv.WriteString(m.String())
	}
	return out.Sprintf("depth %d score %d mate %d nodes %d nps %d time %d pv %s",
		si.Depth, si.ScoreCp, si.MateScore, si.Nodes, si.Nps, si.ElapsedMs, pv.String())
}

// scoreCp converts a from-side-to-move value into White's point of view.
func scoreCp(v types.Value, stm types.Color) int {
	if stm == types.Black {
		v = -v
	}
	return int(v)
}

// mateScore returns the signed ply-to-mate count encoded in v (from
// side-to-move's perspective), or 0 if v isn't a mate score.
func mateScore(v types.Value) int {
	return types.MateIn(v)
}
