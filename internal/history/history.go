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

// Package history provides the move-ordering tables the alpha-beta search
// updates as it runs: a history counter per color/from/to square, and a
// counter-move table keyed by the opponent's last move.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// History tracks move-ordering statistics accumulated during search:
// a history count per (color, from, to), bumped whenever a quiet move
// causes a beta cutoff, and the move that most recently cut off search
// after each (from, to) pair, used as that pair's counter-move.
type History struct {
	count   [2][types.SqLength][types.SqLength]int64
	counter [types.SqLength][types.SqLength]types.Move
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Get returns ctm's accumulated history count for the from-to pair,
// satisfying movegen.HistoryTable.
func (h *History) Get(ctm types.Color, from, to types.Square) int64 {
	return h.count[ctm][from][to]
}

// CounterMove returns the move recorded as the best reply to a move
// ending on (from, to), or types.MoveNone if none has been recorded.
func (h *History) CounterMove(from, to types.Square) types.Move {
	return h.counter[from][to]
}

// Update records that m caused a beta cutoff at the given depth while
// stm was on move: bumps m's history count by depth^2 (so cutoffs found
// deeper in the tree count for more) and remembers m as the countermove
// for the move that was just replied to, lastMove.
func (h *History) Update(stm types.Color, m types.Move, lastMove types.Move, depth int) {
	h.count[stm][m.From()][m.To()] += int64(depth) * int64(depth)
	if lastMove.IsValid() {
		h.counter[lastMove.From()][lastMove.To()] = m
	}
}

// Clear resets every counter and counter-move entry to zero, done
// between searches so stale move-ordering hints from a prior position
// don't bias the next one.
func (h *History) Clear() {
	*h = History{}
}

func (h *History) String() string {
	var sb strings.Builder
	for from := types.SqA1; from < types.SqNone; from++ {
		for to := types.SqA1; to < types.SqNone; to++ {
			w := h.count[types.White][from][to]
			b := h.count[types.Black][from][to]
			if w == 0 && b == 0 {
				continue
			}
			sb.WriteString(out.Sprintf("%s%s: white=%d black=%d cm=%s\n",
				from.String(), to.String(), w, b, h.counter[from][to].String()))
		}
	}
	return sb.String()
}
