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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/chesscore/internal/position"
)

// Perft results from https://www.chessprogramming.org/Perft_Results.

func TestStandardPerft(t *testing.T) {
	results := map[int]uint64{
		1: 20,
		2: 400,
		3: 8_902,
		4: 197_281,
		5: 4_865_609,
	}
	for depth, want := range results {
		p := position.NewStandard()
		assert.Equal(t, want, Perft(p, depth), "standard position depth %d", depth)
	}
}

func TestKiwipetePerft(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
	results := map[int]uint64{
		1: 48,
		2: 2_039,
		3: 97_862,
		4: 4_085_603,
	}
	for depth, want := range results {
		p := mustFen(t, fen)
		assert.Equal(t, want, Perft(p, depth), "kiwipete depth %d", depth)
	}
}

func TestEndgameRookPawnPerft(t *testing.T) {
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"
	results := map[int]uint64{
		1: 14,
		2: 191,
		3: 2_812,
		4: 43_238,
		5: 674_624,
	}
	for depth, want := range results {
		p := mustFen(t, fen)
		assert.Equal(t, want, Perft(p, depth), "rook-endgame depth %d", depth)
	}
}

func TestPromotionHeavyPerft(t *testing.T) {
	const fen = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq -"
	results := map[int]uint64{
		1: 6,
		2: 264,
		3: 9_467,
		4: 422_333,
	}
	for depth, want := range results {
		p := mustFen(t, fen)
		assert.Equal(t, want, Perft(p, depth), "promotion-heavy depth %d", depth)
	}
}

func TestDiscoveredCheckPerft(t *testing.T) {
	const fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ -"
	results := map[int]uint64{
		1: 44,
		2: 1_486,
		3: 62_379,
		4: 2_103_487,
	}
	for depth, want := range results {
		p := mustFen(t, fen)
		assert.Equal(t, want, Perft(p, depth), "discovered-check depth %d", depth)
	}
}
