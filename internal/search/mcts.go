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
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/evaluator"
	myLogging "github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/movegen"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/util"
)

// mctsNoise and mctsEvalThreshold tune how a leaf's static evaluation is
// mapped into a [-1,1] simulation outcome. Not exposed as options, unlike
// config.Settings.Search.UctConstant and MctsArenaCapacity.
const (
	mctsNoise         = 0.08
	mctsEvalThreshold = 1200.0
	mctsEvalMax       = 0.75

	mctsTestInterval = 100 * time.Millisecond
	mctsInfoInterval = 1000 * time.Millisecond
)

const noNode int32 = -1

// NodeArenaExhaustedError is thrown when a worker's tree arena runs out
// of space. Fatal: the process aborts rather than searching a silently
// truncated tree.
type NodeArenaExhaustedError struct {
	Capacity int
}

func (e NodeArenaExhaustedError) Error() string {
	return fmt.Sprintf("mcts: node arena exhausted (capacity %d nodes)", e.Capacity)
}

// mctsNode is one node in a worker's arena-indexed game tree: children are
// a singly linked list threaded through sibling/child indices into the
// same arena slice, rather than pointers, so the whole tree lives in one
// contiguous, GC-cheap allocation.
type mctsNode struct {
	visits    int32
	value     float64 // accumulated backprop value, perspective fixed by actionCol
	move      types.Move
	actionCol float64 // +1 or -1: flips sign each ply so backprop always adds a [0,1] term

	parent      int32
	firstChild  int32
	nextSibling int32

	// cache holds a resolved terminal node's backprop value (0 for a
	// draw); isFull/isUnknown record the other two resolution states a
	// node can be in, mirroring the original engine's three-way
	// UNKNOWN/FULL/terminal-value cache field.
	cache     float64
	isFull    bool
	isUnknown bool
}

const cacheDraw = 0.0

// mctsArena is one Lazy-SMP-style worker's private tree plus the position
// it was built against. Workers share only the stop flag; unlike
// AlphaBeta's auxiliary workers they have no transposition table to share.
type mctsArena struct {
	nodes []mctsNode
	len   int32

	pos  *position.Position
	gen  *movegen.Generator
	eval *evaluator.Evaluator

	visits int64 // atomic; total expansions performed by this worker

	mu        sync.Mutex // guards maxDepth/bestMove/bestScore below
	maxDepth  int
	bestMove  types.Move
	bestScore float64
}

func newMctsArena(root *position.Position, capacity int) *mctsArena {
	a := &mctsArena{
		nodes: make([]mctsNode, capacity),
		len:   1,
		pos:   root,
		gen:   movegen.New(),
		eval:  evaluator.NewEvaluator(),
	}
	a.nodes[0] = mctsNode{parent: noNode, firstChild: noNode, nextSibling: noNode, isUnknown: true}
	if root.SideToMove() == types.White {
		a.nodes[0].actionCol = -1
	} else {
		a.nodes[0].actionCol = 1
	}
	return a
}

// Mcts is the parallel Monte-Carlo tree search driver: N workers each
// grow their own UCT tree against a private position clone until
// stopped, and the final move is read off a uniformly random worker's
// root.
type Mcts struct {
	log *logging.Logger

	runSem *semaphore.Weighted
	stop   *util.Bool

	root *position.Position

	onBestMove BestMoveFunc
	onInfo     InfoFunc

	mu   sync.Mutex
	last SearchInfo
}

// NewMcts returns an idle Mcts driver.
func NewMcts() *Mcts {
	return &Mcts{
		log:    myLogging.GetLog(),
		runSem: semaphore.NewWeighted(1),
		stop:   util.NewBool(false),
	}
}

// Load copies p in as the search root.
func (mc *Mcts) Load(p *position.Position) {
	mc.root = p.Clone()
}

// IsSearching reports whether a search is currently running.
func (mc *Mcts) IsSearching() bool {
	if !mc.runSem.TryAcquire(1) {
		return true
	}
	mc.runSem.Release(1)
	return false
}

// LastInfo returns the most recently published progress snapshot.
func (mc *Mcts) LastInfo() SearchInfo {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.last
}

// Start begins an MCTS search in a new goroutine. If a search is already
// running, Start logs and returns without effect.
func (mc *Mcts) Start(limits Limits, bestMove BestMoveFunc, info InfoFunc) {
	if !mc.runSem.TryAcquire(1) {
		mc.log.Warning("Mcts.Start: search already running")
		return
	}
	mc.stop.Store(false)
	mc.onBestMove = bestMove
	mc.onInfo = info
	go mc.run(limits)
}

// Stop cancels a running search and blocks until it has fully stopped.
func (mc *Mcts) Stop() {
	mc.stop.Store(true)
	_ = mc.runSem.Acquire(context.Background(), 1)
	mc.runSem.Release(1)
}

func (mc *Mcts) run(limits Limits) {
	defer mc.runSem.Release(1)

	if !movegen.New().HasLegalMove(mc.root) {
		mc.log.Info("Mcts: no legal move at root (checkmate or stalemate)")
		if mc.onBestMove != nil {
			mc.onBestMove(types.MoveNone)
		}
		return
	}

	startTime := time.Now()
	numWorkers := config.Settings.Search.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	capacity := config.Settings.Search.MctsArenaCapacity
	if capacity < 2 {
		capacity = 2
	}

	arenas := make([]*mctsArena, numWorkers)
	var wg sync.WaitGroup
	for i := range arenas {
		arenas[i] = newMctsArena(mc.root.Clone(), capacity)
		wg.Add(1)
		go func(a *mctsArena) {
			defer wg.Done()
			mc.runWorker(a)
		}(arenas[i])
	}

	lastNodes := int64(0)
	lastInfo := startTime
	for {
		time.Sleep(mctsTestInterval)

		totalNodes := int64(0)
		maxDepth := 0
		avgScore := 0.0
		for _, a := range arenas {
			totalNodes += atomic.LoadInt64(&a.visits)
			a.mu.Lock()
			avgScore += a.bestScore
			if a.maxDepth > maxDepth {
				maxDepth = a.maxDepth
			}
			a.mu.Unlock()
		}
		avgScore /= float64(numWorkers)

		if limits.MaxNodes > 0 && uint64(totalNodes) >= limits.MaxNodes {
			break
		}
		if limits.MoveTimeMs > 0 && time.Since(startTime).Milliseconds() >= limits.MoveTimeMs {
			break
		}
		if mc.stop.Load() {
			break
		}

		if time.Since(lastInfo) >= mctsInfoInterval {
			elapsed := time.Since(startTime)
			nodes := uint64(totalNodes)
			si := SearchInfo{
				Depth:      maxDepth,
				Nodes:      nodes,
				ElapsedMs:  elapsed.Milliseconds(),
				Nps:        util.Nps(uint64(totalNodes-lastNodes), time.Since(lastInfo)),
				SideToMove: mc.root.SideToMove(),
				ScoreCp:    int(avgScore*1000 - 500),
			}
			mc.mu.Lock()
			mc.last = si
			mc.mu.Unlock()
			if mc.onInfo != nil {
				mc.onInfo(si)
			} else {
				mc.log.Info(si.String())
			}
			lastNodes = totalNodes
			lastInfo = time.Now()
		}
	}

	mc.stop.Store(true)
	wg.Wait()

	// Per the original engine this is distilled from, the final move is
	// read from one uniformly random worker's root, not the plurality or
	// highest-scoring worker - an intentional quirk, not a bug.
	chosen := arenas[rand.Intn(numWorkers)]
	best := chosen.bestMove
	mc.log.Infof("Mcts: finished after %s, best move %s", time.Since(startTime), best.String())
	if mc.onBestMove != nil {
		mc.onBestMove(best)
	}
}

// runWorker repeatedly selects into the tree, expanding exactly one new
// leaf per iteration, until the shared stop flag is observed.
func (mc *Mcts) runWorker(a *mctsArena) {
	for i := 0; ; i++ {
		if mc.stop.Load() {
			break
		}
		depth := a.selectAndExpand(0)
		a.mu.Lock()
		if depth > a.maxDepth {
			a.maxDepth = depth
		}
		a.mu.Unlock()
		atomic.AddInt64(&a.visits, 1)

		if i > 0 && i%10000 == 0 {
			a.updateBest()
		}
	}
	a.updateBest()
}

// updateBest records the root child with the most visits as this
// worker's current best move, matching the original engine's "most
// robust child" selection rule.
func (a *mctsArena) updateBest() {
	a.mu.Lock()
	defer a.mu.Unlock()

	root := &a.nodes[0]
	bestVisits := int32(-1)
	var best *mctsNode
	for ci := root.firstChild; ci != noNode; ci = a.nodes[ci].nextSibling {
		c := &a.nodes[ci]
		if c.visits > bestVisits {
			bestVisits = c.visits
			best = c
		}
	}
	if best == nil {
		return
	}
	a.bestMove = best.move
	a.bestScore = best.value / float64(best.visits)
}

// selectAndExpand walks down from node index ni by UCT until it finds an
// unresolved or not-fully-expanded node, expands exactly one child there
// (or resolves ni as terminal if it has no legal moves), and backpropagates
// the result up to the root. Returns the depth reached below ni.
func (a *mctsArena) selectAndExpand(ni int32) int {
	node := &a.nodes[ni]

	if !node.isUnknown {
		if !node.isFull {
			a.backprop(ni, node.cache)
			return 0
		}
		best := a.bestUctChild(ni)
		if !a.pos.MakeMove(a.nodes[best].move) {
			a.pos.UnmakeMove()
			return 0
		}
		depth := 1 + a.selectAndExpand(best)
		a.pos.UnmakeMove()
		return depth
	}

	if a.pos.HalfMoveClock() >= 50 || a.pos.NumRepetitions() >= 3 || a.pos.HasInsufficientMaterial() {
		node.isUnknown = false
		node.cache = cacheDraw
		a.backprop(ni, cacheDraw)
		return 0
	}

	moves := a.gen.PseudoLegalMoves(a.pos, movegen.GenAll)

	// Move generation is deterministic for a given position, so a node's
	// existing children are always exactly its first K legal moves in
	// generation order; walk past those, then expand the first move that
	// isn't yet a child (mirrors the original engine's lock-step skip of
	// already-expanded children instead of a membership check).
	next := node.firstChild
	var lastChild int32 = noNode

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !a.pos.MakeMove(m) {
			a.pos.UnmakeMove()
			continue
		}

		if next != noNode {
			lastChild = next
			next = a.nodes[next].nextSibling
			a.pos.UnmakeMove()
			continue
		}

		childIdx := a.len
		if int(childIdx) >= len(a.nodes) {
			panic(NodeArenaExhaustedError{Capacity: len(a.nodes)})
		}
		a.len++
		child := &a.nodes[childIdx]
		*child = mctsNode{
			parent:      ni,
			firstChild:  noNode,
			nextSibling: noNode,
			move:        m,
			actionCol:   -node.actionCol,
			isUnknown:   true,
		}
		if lastChild == noNode {
			node.firstChild = childIdx
		} else {
			a.nodes[lastChild].nextSibling = childIdx
		}

		value := a.leafValue()
		a.pos.UnmakeMove()
		a.backprop(childIdx, value)
		return 0
	}

	if node.firstChild == noNode {
		node.isUnknown = false
		if a.pos.HasCheck() {
			node.cache = node.actionCol
			a.backprop(ni, node.actionCol)
		} else {
			node.cache = cacheDraw
			a.backprop(ni, cacheDraw)
		}
		return 0
	}

	node.isUnknown = false
	node.isFull = true
	return 1 + a.selectAndExpand(ni)
}

// leafValue statically evaluates the current position, maps centipawns
// into roughly [-1,1] via mctsEvalThreshold, and perturbs it with a
// six-sample makeshift-normal noise term.
func (a *mctsArena) leafValue() float64 {
	score := float64(a.eval.Evaluate(a.pos))
	value := score / mctsEvalThreshold

	// makeshift normal distribution
	noise := 0.0
	for i := 0; i < 6; i++ {
		noise += rand.Float64()
	}
	noise -= 6.0
	value += (noise / 6.0) * mctsNoise

	if value > mctsEvalMax {
		value = mctsEvalMax
	}
	if value < -mctsEvalMax {
		value = -mctsEvalMax
	}
	return value
}

// backprop adds value's win-probability contribution to ni and every
// ancestor up to the root, folding in
// each node's actionCol so the accumulated value always represents a
// probability in [0,1] from that node's own perspective.
func (a *mctsArena) backprop(ni int32, value float64) {
	for ni != noNode {
		node := &a.nodes[ni]
		node.visits++
		node.value += 0.5 + node.actionCol*value/2.0
		ni = node.parent
	}
}

// bestUctChild returns the arena index of ni's child with the highest UCT
// score, exploitation + C*sqrt(ln(N)/n).
func (a *mctsArena) bestUctChild(ni int32) int32 {
	node := &a.nodes[ni]
	c := config.Settings.Search.UctConstant

	best := node.firstChild
	bestUct := math.Inf(-1)
	for ci := node.firstChild; ci != noNode; ci = a.nodes[ci].nextSibling {
		child := &a.nodes[ci]
		uct := child.value/float64(child.visits) + c*math.Sqrt(math.Log(float64(node.visits))/float64(child.visits))
		if uct > bestUct {
			bestUct = uct
			best = ci
		}
	}
	return best
}
