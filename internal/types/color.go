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

package types

// Color identifies the side to move or the owner of a piece.
type Color uint8

const (
	White Color = iota
	Black
	ColorLength
	ColorNone
)

// Flip returns the opposite color.
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid reports whether c is White or Black.
func (c Color) IsValid() bool {
	return c == White || c == Black
}

// Direction returns +1 for White, -1 for Black; used to orient ranks
// (pawn pushes, promotion ranks, back ranks) relative to the mover.
func (c Color) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// PushDirection returns the direction c's pawns advance: North for
// White, South for Black.
func (c Color) PushDirection() Direction {
	if c == White {
		return North
	}
	return South
}

// PawnRank returns the rank on which c's pawns start.
func (c Color) PawnRank() Rank {
	if c == White {
		return Rank2
	}
	return Rank7
}

// PromotionRank returns the rank c's pawns promote on.
func (c Color) PromotionRank() Rank {
	if c == White {
		return Rank8
	}
	return Rank1
}

// BackRank returns c's own back rank.
func (c Color) BackRank() Rank {
	if c == White {
		return Rank1
	}
	return Rank8
}

func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}
