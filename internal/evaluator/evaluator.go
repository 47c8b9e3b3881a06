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

// Package evaluator computes a tapered, side-relative centipawn value for
// a position from a table of weighted features: material, center control,
// king safety, development, pawn structure and open files.
package evaluator

import (
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/chesscore/internal/board"
	"github.com/corvidchess/chesscore/internal/config"
	myLogging "github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// centerSquares are the four central squares Center control guards.
var centerSquares = [4]types.Square{types.SqD4, types.SqE4, types.SqD5, types.SqE5}

// Evaluator holds the scratch state and pawn cache Evaluate reuses across
// calls to avoid per-call allocation.
type Evaluator struct {
	log *logging.Logger

	position *position.Position
	phase    int // 0..256, 0 = pure middlegame, 256 = pure endgame

	score types.Score

	pawnCache *pawnCache
}

// precomputed per-phase lazy-eval threshold, indexed by board.Phase()
// (0..GamePhaseMax, high at the start of the game).
var threshold [types.GamePhaseMax + 1]int16

func init() {
	for i := 0; i <= types.GamePhaseMax; i++ {
		gamePhaseFactor := float64(i) / types.GamePhaseMax
		threshold[i] = config.Settings.Eval.LazyEvalThreshold +
			int16(float64(config.Settings.Eval.LazyEvalThreshold)*gamePhaseFactor)
	}
}

// NewEvaluator returns a ready-to-use Evaluator.
func NewEvaluator() *Evaluator {
	e := &Evaluator{log: myLogging.GetLog()}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache()
	} else {
		e.log.Info("pawn cache disabled in configuration")
	}
	return e
}

// InitEval resets per-position scratch state. Evaluate calls this itself;
// exposed separately so tests can drive sub-evaluations directly.
func (e *Evaluator) InitEval(p *position.Position) {
	e.position = p
	e.phase = (types.GamePhaseMax - p.Board.Phase()) * 256 / types.GamePhaseMax
	if e.phase < 0 {
		e.phase = 0
	}
	if e.phase > 256 {
		e.phase = 256
	}
	e.score.MidGameValue = 0
	e.score.EndGameValue = 0
}

// Evaluate computes p's value in centipawns from the view of the side to
// move.
func (e *Evaluator) Evaluate(p *position.Position) types.Value {
	e.InitEval(p)
	return e.evaluate()
}

func (e *Evaluator) evaluate() types.Value {
	if e.position.HasInsufficientMaterial() {
		return types.ValueDraw
	}

	b := e.position.Board

	mgW, egW := b.Material(types.White)
	mgB, egB := b.Material(types.Black)
	e.score.MidGameValue = int16(mgW - mgB)
	e.score.EndGameValue = int16(egW - egB)

	e.score.MidGameValue += config.Settings.Eval.Tempo

	if config.Settings.Eval.UseLazyEval {
		ph := b.Phase()
		if ph > types.GamePhaseMax {
			ph = types.GamePhaseMax
		}
		if v := e.value(); v > types.Value(threshold[ph]) {
			return e.finalEval(v)
		}
	}

	e.addFeature(centerControl, config.Settings.Eval.CenterControlMg, config.Settings.Eval.CenterControlEg)
	e.addFeature(kingSafety, config.Settings.Eval.KingSafetyMg, config.Settings.Eval.KingSafetyEg)
	e.addFeature(development, config.Settings.Eval.DevelopmentMg, config.Settings.Eval.DevelopmentEg)
	e.addFeature(edgeKnights, config.Settings.Eval.EdgeKnightMg, config.Settings.Eval.EdgeKnightEg)
	e.addFeature(passedPawns, config.Settings.Eval.PassedPawnMg, config.Settings.Eval.PassedPawnEg)
	e.addFeature(passerRankBonus, config.Settings.Eval.PasserRankBonusMg, config.Settings.Eval.PasserRankBonusEg)
	e.addFeature(kingOnFirstRank, config.Settings.Eval.KingFirstRankMg, config.Settings.Eval.KingFirstRankEg)
	e.addFeature(pawnShield, config.Settings.Eval.PawnShieldMg, config.Settings.Eval.PawnShieldEg)
	e.addFeature(openFileRook, config.Settings.Eval.OpenFileRookMg, config.Settings.Eval.OpenFileRookEg)
	e.addFeature(openFileQueen, config.Settings.Eval.OpenFileQueenMg, config.Settings.Eval.OpenFileQueenEg)

	if config.Settings.Eval.UsePawnCache {
		e.score.Add(e.evaluatePawns())
	} else {
		e.addFeature(isolatedPawns, config.Settings.Eval.IsolatedPawnMg, config.Settings.Eval.IsolatedPawnEg)
		e.addFeature(backwardPawns, config.Settings.Eval.BackwardPawnMg, config.Settings.Eval.BackwardPawnEg)
		e.addFeature(doubledPawns, config.Settings.Eval.DoubledPawnMg, config.Settings.Eval.DoubledPawnEg)
		e.addFeature(pawnChains, config.Settings.Eval.PawnChainMg, config.Settings.Eval.PawnChainEg)
	}

	return e.finalEval(e.value())
}

// value tapers the accumulated mid/end-game score by the current phase.
func (e *Evaluator) value() types.Value {
	return e.score.Taper(e.phase)
}

// finalEval flips a White-relative value to the side-to-move's view.
func (e *Evaluator) finalEval(v types.Value) types.Value {
	return v * types.Value(e.position.SideToMove().Direction())
}

// featureFn computes a raw, unweighted feature count for color c.
type featureFn func(b *board.Board, c types.Color) int16

// addFeature applies featureFn's White-minus-Black difference to the
// running score at the given mg/eg weights.
func (e *Evaluator) addFeature(f featureFn, mg, eg int16) {
	b := e.position.Board
	raw := f(b, types.White) - f(b, types.Black)
	e.score.MidGameValue += raw * mg
	e.score.EndGameValue += raw * eg
}

// Report renders a human-readable evaluation breakdown, used from tests
// and ad-hoc debugging - never on the search hot path.
func (e *Evaluator) Report() string {
	var report strings.Builder
	report.WriteString("Evaluation Report\n")
	report.WriteString("=============================================\n")
	report.WriteString(out.Sprintf("%s\n", e.position.Board.String()))
	report.WriteString(out.Sprintf("Phase: %d/256\n", e.phase))
	report.WriteString(out.Sprintf("Eval value: %d (from the view of %s)\n",
		e.Evaluate(e.position), e.position.SideToMove().String()))
	return report.String()
}
