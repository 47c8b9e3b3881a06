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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

func TestMain(m *testing.M) {
	config.Setup()
	zobrist.Init()
	attacks.Init()
	m.Run()
}

// runToCompletion starts ab on p with the given limits and blocks until
// Start's bestMove callback fires, returning the move and the last
// published SearchInfo.
func runToCompletion(t *testing.T, ab *AlphaBeta, p *position.Position, limits Limits) (types.Move, SearchInfo) {
	t.Helper()
	ab.Load(p)

	var wg sync.WaitGroup
	wg.Add(1)
	var best types.Move
	ab.Start(limits, func(m types.Move) {
		best = m
		wg.Done()
	}, nil)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("search did not complete in time")
	}
	return best, ab.LastInfo()
}

func TestAlphaBetaFindsMateInOne(t *testing.T) {
	p, err := position.FromFen("r1bqkbnr/pp1ppppp/2p5/2n5/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 0 1")
	require.NoError(t, err)

	ab := NewAlphaBeta()
	best, info := runToCompletion(t, ab, p, Limits{MaxNodes: 2_000_000})

	assert.Equal(t, types.SqF7, best.To(), "expected Qxf7#, got %s", best.String())
	assert.True(t, types.IsMateScore(types.Value(info.ScoreCp)) || info.MateScore != 0,
		"expected a mate score, got info %+v", info)
}

func TestAlphaBetaStalemateHasNoLegalMove(t *testing.T) {
	// Black to move, stalemated: king on h8 boxed in, no other piece.
	p, err := position.FromFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	ab := NewAlphaBeta()
	best, _ := runToCompletion(t, ab, p, Limits{MaxNodes: 100_000})
	assert.Equal(t, types.MoveNone, best)
}

func TestAlphaBetaStopIsCooperative(t *testing.T) {
	p := position.NewStandard()
	ab := NewAlphaBeta()
	ab.Load(p)

	done := make(chan types.Move, 1)
	ab.Start(Limits{}, func(m types.Move) { done <- m }, nil)

	time.Sleep(20 * time.Millisecond)
	ab.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not unblock the running search")
	}
	assert.False(t, ab.IsSearching())
}

func TestAlphaBetaRespectsNodeLimit(t *testing.T) {
	p := position.NewStandard()
	ab := NewAlphaBeta()
	_, _ = runToCompletion(t, ab, p, Limits{MaxNodes: 5_000})
	assert.LessOrEqual(t, ab.NodesSearched(), uint64(5_000_000))
}
