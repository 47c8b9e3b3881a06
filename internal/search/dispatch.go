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

	"github.com/op/go-logging"

	myLogging "github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/position"
)

// DriverType selects which search driver Dispatch forwards to.
type DriverType int

const (
	DriverAlphaBeta DriverType = iota
	DriverMcts
)

func (t DriverType) String() string {
	if t == DriverMcts {
		return "mcts"
	}
	return "alphabeta"
}

// driver is the common interface both AlphaBeta and Mcts satisfy, letting
// Dispatch forward calls without knowing which one is active.
type driver interface {
	Load(p *position.Position)
	Start(limits Limits, bestMove BestMoveFunc, info InfoFunc)
	Stop()
	IsSearching() bool
	LastInfo() SearchInfo
}

// Dispatch is the single selector between AlphaBeta and Mcts: exactly one of the two is "current" at a time, and every
// Dispatch method forwards to it. Switching drivers mid-search stops the
// old one first.
type Dispatch struct {
	log *logging.Logger

	mu      sync.Mutex
	current DriverType

	alphaBeta *AlphaBeta
	mcts      *Mcts
}

// NewDispatch returns a Dispatch defaulted to AlphaBeta, with both
// drivers constructed and idle.
func NewDispatch() *Dispatch {
	return &Dispatch{
		log:       myLogging.GetLog(),
		current:   DriverAlphaBeta,
		alphaBeta: NewAlphaBeta(),
		mcts:      NewMcts(),
	}
}

// SetType switches the active driver, stopping whichever one is currently
// running first.
func (d *Dispatch) SetType(t DriverType) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t == d.current {
		return
	}
	d.active().Stop()
	d.current = t
	d.log.Infof("Dispatch: switched to %s", t)
}

// Type reports the currently active driver.
func (d *Dispatch) Type() DriverType {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Dispatch) active() driver {
	if d.current == DriverMcts {
		return d.mcts
	}
	return d.alphaBeta
}

// Load loads p as the root position for whichever driver is active.
func (d *Dispatch) Load(p *position.Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active().Load(p)
}

// Start begins a search on the active driver.
func (d *Dispatch) Start(limits Limits, bestMove BestMoveFunc, info InfoFunc) {
	d.mu.Lock()
	active := d.active()
	d.mu.Unlock()
	active.Start(limits, bestMove, info)
}

// Stop cancels the active driver's running search, if any.
func (d *Dispatch) Stop() {
	d.mu.Lock()
	active := d.active()
	d.mu.Unlock()
	active.Stop()
}

// IsSearching reports whether the active driver has a search running.
func (d *Dispatch) IsSearching() bool {
	d.mu.Lock()
	active := d.active()
	d.mu.Unlock()
	return active.IsSearching()
}

// LastInfo returns the active driver's most recently published progress
// snapshot.
func (d *Dispatch) LastInfo() SearchInfo {
	d.mu.Lock()
	active := d.active()
	d.mu.Unlock()
	return active.LastInfo()
}

// AlphaBeta exposes the AlphaBeta driver directly, for callers that need
// driver-specific controls (e.g. ClearHash) regardless of which one is
// currently active.
func (d *Dispatch) AlphaBeta() *AlphaBeta {
	return d.alphaBeta
}

// Mcts exposes the Mcts driver directly.
func (d *Dispatch) Mcts() *Mcts {
	return d.mcts
}
