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

	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
)

func TestDispatchDefaultsToAlphaBeta(t *testing.T) {
	d := NewDispatch()
	assert.Equal(t, DriverAlphaBeta, d.Type())
}

func TestDispatchForwardsToActiveDriver(t *testing.T) {
	d := NewDispatch()
	d.Load(position.NewStandard())

	done := make(chan types.Move, 1)
	d.Start(Limits{MaxNodes: 5_000}, func(m types.Move) { done <- m }, nil)

	select {
	case m := <-done:
		assert.True(t, m.IsValid())
	case <-time.After(10 * time.Second):
		t.Fatal("dispatch search did not complete in time")
	}
	assert.False(t, d.IsSearching())
}

func TestDispatchSetTypeStopsRunningSearch(t *testing.T) {
	orig := config.Settings.Search.MctsArenaCapacity
	config.Settings.Search.MctsArenaCapacity = 1_000_000
	defer func() { config.Settings.Search.MctsArenaCapacity = orig }()

	d := NewDispatch()
	d.Load(position.NewStandard())

	done := make(chan types.Move, 1)
	d.Start(Limits{}, func(m types.Move) { done <- m }, nil)
	time.Sleep(20 * time.Millisecond)

	d.SetType(DriverMcts)
	assert.Equal(t, DriverMcts, d.Type())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("SetType did not stop the previously active driver's search")
	}
}
