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

// Package search implements the two interchangeable search drivers:
// AlphaBeta, an iterative-deepening Lazy-SMP negamax search, Mcts, a
// parallel Monte-Carlo tree search, and Dispatch, the single-valued
// selector between them.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/evaluator"
	"github.com/corvidchess/chesscore/internal/history"
	myLogging "github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/movegen"
	"github.com/corvidchess/chesscore/internal/moveslice"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/transpositiontable"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/util"
)

// AlphaBeta is the iterative-deepening, Lazy-SMP negamax driver. Create with NewAlphaBeta, Load a root position, then Start it;
// Stop cancels cooperatively.
type AlphaBeta struct {
	log *logging.Logger

	tt *transpositiontable.Table

	runSem *semaphore.Weighted // admits exactly one running search
	stop   *util.Bool          // cooperative cancellation, shared by control thread and every worker

	root *position.Position

	nodes     uint64 // atomic; shared across control thread and workers
	startTime time.Time

	onBestMove BestMoveFunc
	onInfo     InfoFunc

	mu   sync.Mutex // guards last below against the run goroutine
	pv   *moveslice.MoveSlice
	last SearchInfo
}

// NewAlphaBeta returns a driver with its own transposition table sized
// per config.
func NewAlphaBeta() *AlphaBeta {
	ab := &AlphaBeta{
		log:    myLogging.GetLog(),
		runSem: semaphore.NewWeighted(1),
		stop:   util.NewBool(false),
	}
	if config.Settings.Search.UseTT {
		ab.tt = transpositiontable.NewTable(config.Settings.Search.TTSize)
	}
	return ab
}

// Load copies p into the driver as the search root. Must not be called while a search is running.
func (ab *AlphaBeta) Load(p *position.Position) {
	ab.root = p.Clone()
}

// IsSearching reports whether a search is currently running.
func (ab *AlphaBeta) IsSearching() bool {
	if !ab.runSem.TryAcquire(1) {
		return true
	}
	ab.runSem.Release(1)
	return false
}

// Start begins a search under the given limits, in a new goroutine.
// bestMove is invoked exactly once when the search concludes; info is
// invoked after every completed iteration. If a search is
// already running, Start logs and returns without effect.
func (ab *AlphaBeta) Start(limits Limits, bestMove BestMoveFunc, info InfoFunc) {
	if !ab.runSem.TryAcquire(1) {
		ab.log.Warning("AlphaBeta.Start: search already running")
		return
	}
	ab.stop.Store(false)
	ab.onBestMove = bestMove
	ab.onInfo = info
	go ab.run(limits)
}

// Stop cancels a running search and blocks until it has fully stopped.
func (ab *AlphaBeta) Stop() {
	ab.stop.Store(true)
	_ = ab.runSem.Acquire(context.Background(), 1)
	ab.runSem.Release(1)
}

// searchWorker is one goroutine's private search state: its own root
// position copy, history table, evaluator, and one move generator per
// ply, since a Generator reuses its internal buffer across calls and so
// cannot be shared across concurrently active plies, let alone across
// goroutines. Workers share only the transposition table and the stop
// flag.
type searchWorker struct {
	ab   *AlphaBeta
	pos  *position.Position
	gen  []*movegen.Generator
	pv   []*moveslice.MoveSlice // per-ply child-PV scratch, reused across nodes
	hist *history.History
	eval *evaluator.Evaluator
}

func newSearchWorker(ab *AlphaBeta, root *position.Position) *searchWorker {
	w := &searchWorker{
		ab:   ab,
		pos:  root,
		gen:  make([]*movegen.Generator, types.MaxDepth+1),
		pv:   make([]*moveslice.MoveSlice, types.MaxDepth+1),
		hist: history.NewHistory(),
		eval: evaluator.NewEvaluator(),
	}
	for i := range w.gen {
		w.gen[i] = movegen.New()
		w.pv[i] = moveslice.NewMoveSlice(types.MaxDepth)
	}
	return w
}

// run drives the full search: spawns Lazy-SMP auxiliary workers, then
// iteratively deepens on the control thread itself, publishing progress
// after each completed iteration, until a stop condition is hit.
func (ab *AlphaBeta) run(limits Limits) {
	defer ab.runSem.Release(1)

	ab.startTime = time.Now()
	atomic.StoreUint64(&ab.nodes, 0)
	if ab.tt != nil {
		ab.tt.AgeEntries()
	}

	if !movegen.New().HasLegalMove(ab.root) {
		ab.log.Info("AlphaBeta: no legal move at root (checkmate or stalemate)")
		if ab.onBestMove != nil {
			ab.onBestMove(types.MoveNone)
		}
		return
	}

	numWorkers := config.Settings.Search.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for i := 1; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ab.runAuxiliaryWorker(limits)
		}()
	}

	control := newSearchWorker(ab, ab.root)
	bestPv := moveslice.NewMoveSlice(types.MaxDepth)

	depth := 0
	for {
		depth++
		pv := moveslice.NewMoveSlice(types.MaxDepth)
		value := ab.negamax(control, depth, 0, types.Loss, types.Win, pv)
		if value == types.Incomplete {
			break
		}
		bestPv = pv
		ab.publishProgress(depth, value, bestPv)
		if ab.shouldStop(limits, depth) {
			break
		}
	}

	ab.stop.Store(true)
	wg.Wait()

	best := types.MoveNone
	if bestPv.Len() > 0 {
		best = bestPv.At(0)
	}
	ab.log.Infof("AlphaBeta: finished after %s, %d nodes, best move %s",
		time.Since(ab.startTime), atomic.LoadUint64(&ab.nodes), best.String())
	if ab.onBestMove != nil {
		ab.onBestMove(best)
	}
}

// runAuxiliaryWorker deepens independently on its own root copy, sharing
// only the transposition table and stop flag with the control thread.
func (ab *AlphaBeta) runAuxiliaryWorker(limits Limits) {
	w := newSearchWorker(ab, ab.root.Clone())
	depth := 0
	for !ab.stop.Load() {
		depth++
		pv := moveslice.NewMoveSlice(types.MaxDepth)
		value := ab.negamax(w, depth, 0, types.Loss, types.Win, pv)
		if value == types.Incomplete {
			return
		}
		if ab.shouldStop(limits, depth) {
			return
		}
	}
}

// shouldStop reports whether the iterative deepening loop should end
// after completing the given depth.
func (ab *AlphaBeta) shouldStop(limits Limits, depthCompleted int) bool {
	if ab.stop.Load() {
		return true
	}
	if limits.MaxNodes > 0 && atomic.LoadUint64(&ab.nodes) >= limits.MaxNodes {
		return true
	}
	if limits.MoveTimeMs > 0 && time.Since(ab.startTime).Milliseconds() >= limits.MoveTimeMs {
		return true
	}
	// one below MaxDepth so the TT's 7-bit depth field can always hold
	// the deepest completed iteration
	if depthCompleted >= types.MaxDepth-1 {
		return true
	}
	return false
}

func (ab *AlphaBeta) publishProgress(depth int, value types.Value, pv *moveslice.MoveSlice) {
	moves := make([]types.Move, pv.Len())
	for i := range moves {
		moves[i] = pv.At(i)
	}
	nodes := atomic.LoadUint64(&ab.nodes)
	elapsed := time.Since(ab.startTime)
	si := SearchInfo{
		Depth:      depth,
		Nodes:      nodes,
		ElapsedMs:  elapsed.Milliseconds(),
		Nps:        util.Nps(nodes, elapsed),
		SideToMove: ab.root.SideToMove(),
		ScoreCp:    scoreCp(value, ab.root.SideToMove()),
		MateScore:  mateScore(value),
		Pv:         moves,
	}
	ab.mu.Lock()
	ab.last = si
	ab.mu.Unlock()
	if ab.onInfo != nil {
		ab.onInfo(si)
	} else {
		ab.log.Info(si.String())
	}
}

// negamax is the recursive alpha-beta search: at depth 0
// it falls into quiescence search; otherwise it generates pseudo-legal
// moves, orders them, and recurses with a swapped-and-negated window,
// updating alpha and breaking the loop on a beta cutoff. Returns
// types.Incomplete the instant the shared stop flag is observed set,
// unwinding every pending recursion level without finishing its move
// loop.
func (ab *AlphaBeta) negamax(w *searchWorker, depth, ply int, alpha, beta types.Value, pv *moveslice.MoveSlice) types.Value {
	if ab.stop.Load() {
		return types.Incomplete
	}
	atomic.AddUint64(&ab.nodes, 1)

	p := w.pos

	if ply > 0 && (p.HalfMoveClock() >= 100 || p.NumRepetitions() >= 3 || p.HasInsufficientMaterial()) {
		return types.ValueDraw
	}

	if depth == 0 || ply >= types.MaxDepth {
		return ab.quiescence(w, ply, alpha, beta)
	}

	key := p.Key()
	ttMove := types.MoveNone
	if ab.tt != nil {
		if e := ab.tt.Probe(key); e != nil {
			ttMove = e.Move()
			if int8(depth) <= e.Depth() {
				switch e.ValueType() {
				case types.ValueTypeExact:
					pv.Clear()
					if ttMove != types.MoveNone {
						pv.PushBack(ttMove)
					}
					return e.Value()
				case types.ValueTypeAlpha:
					if e.Value() <= alpha {
						return alpha
					}
				case types.ValueTypeBeta:
					if e.Value() >= beta {
						return beta
					}
				}
			}
		}
	}

	gen := w.gen[ply]
	moves := gen.PseudoLegalMoves(p, movegen.GenAll)
	movegen.OrderMoves(p, moves, ttMove, w.hist, false)

	origAlpha := alpha
	bestValue := types.ValueNA
	bestMove := types.MoveNone
	legalMoves := 0
	childPv := w.pv[ply]

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !p.MakeMove(m) {
			p.UnmakeMove()
			continue
		}
		legalMoves++

		childPv.Clear()
		childValue := ab.negamax(w, depth-1, ply+1, -beta, -alpha, childPv)
		p.UnmakeMove()

		// the sentinel must be tested before negation or it turns into a
		// huge positive "score"
		if childValue == types.Incomplete {
			return types.Incomplete
		}
		value := -childValue

		if value > bestValue {
			bestValue = value
			bestMove = m
			pv.Clear()
			pv.PushBack(m)
			for j := 0; j < childPv.Len(); j++ {
				pv.PushBack(childPv.At(j))
			}
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			if !m.IsCapture() {
				w.hist.Update(p.SideToMove(), m, p.LastMove(), depth)
			}
			break
		}
	}

	if legalMoves == 0 {
		if p.HasCheck() {
			bestValue = types.Loss
		} else {
			bestValue = types.ValueDraw
		}
	}

	if ab.tt != nil {
		vt := types.ValueTypeExact
		switch {
		case bestValue <= origAlpha:
			vt = types.ValueTypeAlpha
		case bestValue >= beta:
			vt = types.ValueTypeBeta
		}
		ab.tt.Put(key, bestMove, int8(depth), bestValue, vt, types.ValueNA)
	}

	return bestValue
}

// quiescence extends the search along capturing/promoting lines past the
// nominal depth limit, to avoid misjudging a position with a pending
// capture on the board. Falls back to a flat evaluation when
// config.Settings.Search.UseQuiescence is false.
func (ab *AlphaBeta) quiescence(w *searchWorker, ply int, alpha, beta types.Value) types.Value {
	p := w.pos
	standPat := w.eval.Evaluate(p)

	if !config.Settings.Search.UseQuiescence || ply >= types.MaxDepth {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	gen := w.gen[ply]
	moves := gen.QuiescenceMoves(p)
	movegen.OrderMoves(p, moves, types.MoveNone, nil, config.Settings.Search.UseSEE)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !p.MakeMove(m) {
			p.UnmakeMove()
			continue
		}
		atomic.AddUint64(&ab.nodes, 1)
		childValue := ab.quiescence(w, ply+1, -beta, -alpha)
		p.UnmakeMove()

		if childValue == types.Incomplete || ab.stop.Load() {
			return types.Incomplete
		}
		value := -childValue
		if value > alpha {
			alpha = value
			if alpha >= beta {
				return alpha
			}
		}
	}
	return alpha
}

// LastInfo returns the most recently published progress snapshot.
func (ab *AlphaBeta) LastInfo() SearchInfo {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last
}

// NodesSearched returns the total node count of the most recent (or
// currently running) search.
func (ab *AlphaBeta) NodesSearched() uint64 {
	return atomic.LoadUint64(&ab.nodes)
}

// ClearHash empties the shared transposition table. Ignored with a log
// warning while a search is running.
func (ab *AlphaBeta) ClearHash() {
	if ab.IsSearching() {
		ab.log.Warning("AlphaBeta.ClearHash: can't clear hash while searching")
		return
	}
	if ab.tt != nil {
		ab.tt.Clear()
	}
}
