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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/chesscore/internal/types"
)

func TestNewHistoryIsEmpty(t *testing.T) {
	h := NewHistory()
	assert.EqualValues(t, 0, h.Get(types.White, types.SqE2, types.SqE4))
	assert.EqualValues(t, types.MoveNone, h.CounterMove(types.SqE2, types.SqE4))
}

func TestHistoryUpdateAccumulatesByDepthSquared(t *testing.T) {
	h := NewHistory()
	m := types.NewMove(types.SqG1, types.SqF3, types.PtNone, types.MoveFlags{})

	h.Update(types.White, m, types.MoveNone, 3)
	assert.EqualValues(t, 9, h.Get(types.White, types.SqG1, types.SqF3))

	h.Update(types.White, m, types.MoveNone, 2)
	assert.EqualValues(t, 13, h.Get(types.White, types.SqG1, types.SqF3))

	// Black's count for the same squares is independent.
	assert.EqualValues(t, 0, h.Get(types.Black, types.SqG1, types.SqF3))
}

func TestHistoryUpdateRecordsCounterMove(t *testing.T) {
	h := NewHistory()
	lastMove := types.NewMove(types.SqE7, types.SqE5, types.PtNone, types.MoveFlags{})
	reply := types.NewMove(types.SqG1, types.SqF3, types.PtNone, types.MoveFlags{})

	h.Update(types.White, reply, lastMove, 4)
	assert.EqualValues(t, reply, h.CounterMove(types.SqE7, types.SqE5))
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	m := types.NewMove(types.SqD2, types.SqD4, types.PtNone, types.MoveFlags{})
	h.Update(types.White, m, types.MoveNone, 5)
	assert.NotZero(t, h.Get(types.White, types.SqD2, types.SqD4))

	h.Clear()
	assert.Zero(t, h.Get(types.White, types.SqD2, types.SqD4))
	assert.EqualValues(t, types.MoveNone, h.CounterMove(types.SqD2, types.SqD4))
}
