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

import "github.com/corvidchess/chesscore/internal/position"

// Perft exhaustively enumerates the legal-move tree below p to depth and
// returns the leaf count. It is test tooling, not a production search
// path; published node-count tables are the sharpest available
// correctness check on move generation and make/unmake. It is exercised
// from this package's own tests and from the bench binary's -perft flag.
func Perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	g := New()
	var nodes uint64
	pseudo := g.PseudoLegalMoves(p, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if !p.MakeMove(m) {
			p.UnmakeMove()
			continue
		}
		nodes += perftRecurse(p, depth-1)
		p.UnmakeMove()
	}
	return nodes
}

func perftRecurse(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	g := New()
	var nodes uint64
	pseudo := g.PseudoLegalMoves(p, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if !p.MakeMove(m) {
			p.UnmakeMove()
			continue
		}
		nodes += perftRecurse(p, depth-1)
		p.UnmakeMove()
	}
	return nodes
}
