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

package config

import "fmt"

// evalConfiguration carries the tapered mg/eg weight for every evaluation
// feature, addressable by name via SetOption so a caller can retune the
// evaluator without a rebuild. Lazy-eval, the pawn cache and the guard-value
// attacker weights round out the ambient evaluation knobs.
type evalConfiguration struct {
	UseLazyEval       bool
	LazyEvalThreshold int16

	Tempo int16

	UsePawnCache  bool
	PawnCacheSize int

	CenterControlMg int16
	CenterControlEg int16

	KingSafetyMg int16
	KingSafetyEg int16

	DevelopmentMg int16
	DevelopmentEg int16

	EdgeKnightMg int16
	EdgeKnightEg int16

	PassedPawnMg int16
	PassedPawnEg int16

	PasserRankBonusMg int16
	PasserRankBonusEg int16

	KingFirstRankMg int16
	KingFirstRankEg int16

	PawnShieldMg int16
	PawnShieldEg int16

	IsolatedPawnMg int16
	IsolatedPawnEg int16

	BackwardPawnMg int16
	BackwardPawnEg int16

	DoubledPawnMg int16
	DoubledPawnEg int16

	PawnChainMg int16
	PawnChainEg int16

	OpenFileRookMg int16
	OpenFileRookEg int16

	OpenFileQueenMg int16
	OpenFileQueenEg int16

	// GuardWeightPawn..GuardWeightKing weight an attacker's contribution to
	// guard_value(sq) by the kind of piece attacking the square.
	GuardWeightPawn   int16
	GuardWeightKnight int16
	GuardWeightBishop int16
	GuardWeightRook   int16
	GuardWeightQueen  int16
	GuardWeightKing   int16
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Eval.UseLazyEval = true
	Settings.Eval.LazyEvalThreshold = 700

	Settings.Eval.Tempo = 10

	Settings.Eval.UsePawnCache = true
	Settings.Eval.PawnCacheSize = 64

	Settings.Eval.CenterControlMg = 20
	Settings.Eval.CenterControlEg = 8

	Settings.Eval.KingSafetyMg = 7
	Settings.Eval.KingSafetyEg = 6

	Settings.Eval.DevelopmentMg = 35
	Settings.Eval.DevelopmentEg = 20

	Settings.Eval.EdgeKnightMg = -10
	Settings.Eval.EdgeKnightEg = -5

	Settings.Eval.PassedPawnMg = 15
	Settings.Eval.PassedPawnEg = 30

	Settings.Eval.PasserRankBonusMg = 8
	Settings.Eval.PasserRankBonusEg = 8

	Settings.Eval.KingFirstRankMg = 10
	Settings.Eval.KingFirstRankEg = -10

	Settings.Eval.PawnShieldMg = 8
	Settings.Eval.PawnShieldEg = 8

	Settings.Eval.IsolatedPawnMg = -10
	Settings.Eval.IsolatedPawnEg = -10

	Settings.Eval.BackwardPawnMg = -10
	Settings.Eval.BackwardPawnEg = -10

	Settings.Eval.DoubledPawnMg = -10
	Settings.Eval.DoubledPawnEg = -20

	Settings.Eval.PawnChainMg = 4
	Settings.Eval.PawnChainEg = 4

	Settings.Eval.OpenFileRookMg = 5
	Settings.Eval.OpenFileRookEg = 5

	Settings.Eval.OpenFileQueenMg = 5
	Settings.Eval.OpenFileQueenEg = 5

	Settings.Eval.GuardWeightPawn = 9
	Settings.Eval.GuardWeightKnight = 6
	Settings.Eval.GuardWeightBishop = 5
	Settings.Eval.GuardWeightRook = 2
	Settings.Eval.GuardWeightQueen = 1
	Settings.Eval.GuardWeightKing = 1
}

// set defaults for configurations here in case a configuration
// is not available from the config file.
func setupEval() {}

// evalOptionTargets maps a SetOption name to the Eval field it addresses.
// Populated in terms of pointers so SetOption stays a flat lookup instead
// of a long switch.
func evalOptionTargets() map[string]*int16 {
	e := &Settings.Eval
	return map[string]*int16{
		"CenterControl_mg": &e.CenterControlMg,
		"CenterControl_eg": &e.CenterControlEg,
		"KingSafety_mg":    &e.KingSafetyMg,
		"KingSafety_eg":    &e.KingSafetyEg,
		"Development_mg":   &e.DevelopmentMg,
		"Development_eg":   &e.DevelopmentEg,
		"EdgeKnight_mg":    &e.EdgeKnightMg,
		"EdgeKnight_eg":    &e.EdgeKnightEg,
		"PassedPawn_mg":    &e.PassedPawnMg,
		"PassedPawn_eg":    &e.PassedPawnEg,
		"PasserRank_mg":    &e.PasserRankBonusMg,
		"PasserRank_eg":    &e.PasserRankBonusEg,
		"KingFirstRank_mg": &e.KingFirstRankMg,
		"KingFirstRank_eg": &e.KingFirstRankEg,
		"PawnShield_mg":    &e.PawnShieldMg,
		"PawnShield_eg":    &e.PawnShieldEg,
		"IsolatedPawn_mg":  &e.IsolatedPawnMg,
		"IsolatedPawn_eg":  &e.IsolatedPawnEg,
		"BackwardPawn_mg":  &e.BackwardPawnMg,
		"BackwardPawn_eg":  &e.BackwardPawnEg,
		"DoubledPawn_mg":   &e.DoubledPawnMg,
		"DoubledPawn_eg":   &e.DoubledPawnEg,
		"PawnChain_mg":     &e.PawnChainMg,
		"PawnChain_eg":     &e.PawnChainEg,
		"OpenFileRook_mg":  &e.OpenFileRookMg,
		"OpenFileRook_eg":  &e.OpenFileRookEg,
		"OpenFileQueen_mg": &e.OpenFileQueenMg,
		"OpenFileQueen_eg": &e.OpenFileQueenEg,
	}
}

// SetOption updates one of the evaluator's named feature weights at
// runtime, using the "<Feature>_mg" / "<Feature>_eg" names this file's
// defaults are keyed on. It returns an error for an unrecognized name
// instead of silently ignoring it.
func (evalConfiguration) SetOption(name string, value int) error {
	target, ok := evalOptionTargets()[name]
	if !ok {
		return fmt.Errorf("config: unknown eval option %q", name)
	}
	*target = int16(value)
	return nil
}
