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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
)

func TestMctsFindsALegalMove(t *testing.T) {
	// small enough to allocate quickly, large enough that workers can't
	// exhaust it in the interval before the controller's first sample
	orig := config.Settings.Search.MctsArenaCapacity
	config.Settings.Search.MctsArenaCapacity = 1_000_000
	defer func() { config.Settings.Search.MctsArenaCapacity = orig }()

	p := position.NewStandard()
	mc := NewMcts()
	mc.Load(p)

	done := make(chan types.Move, 1)
	mc.Start(Limits{MaxNodes: 20_000}, func(m types.Move) { done <- m }, nil)

	select {
	case m := <-done:
		assert.True(t, m.IsValid(), "expected a valid root move, got %s", m.String())
	case <-time.After(20 * time.Second):
		t.Fatal("mcts search did not complete in time")
	}
}

func TestMctsStalemateHasNoLegalMove(t *testing.T) {
	p, err := position.FromFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	mc := NewMcts()
	mc.Load(p)

	done := make(chan types.Move, 1)
	mc.Start(Limits{MaxNodes: 1_000}, func(m types.Move) { done <- m }, nil)

	select {
	case m := <-done:
		assert.Equal(t, types.MoveNone, m)
	case <-time.After(5 * time.Second):
		t.Fatal("mcts search did not complete in time")
	}
}

func TestMctsStopIsCooperative(t *testing.T) {
	orig := config.Settings.Search.MctsArenaCapacity
	config.Settings.Search.MctsArenaCapacity = 1_000_000
	defer func() { config.Settings.Search.MctsArenaCapacity = orig }()

	p := position.NewStandard()
	mc := NewMcts()
	mc.Load(p)

	done := make(chan types.Move, 1)
	mc.Start(Limits{}, func(m types.Move) { done <- m }, nil)

	time.Sleep(50 * time.Millisecond)
	mc.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not unblock the running search")
	}
	assert.False(t, mc.IsSearching())
}
