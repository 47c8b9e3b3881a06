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

// Package moveslice provides helper functionality for slices of type Move.
package moveslice

import (
	"fmt"
	"strings"

	"github.com/corvidchess/chesscore/internal/types"
)

// MoveSlice represents a data structure (go slice) for Move. It carries
// no baked-in move-ordering value - a Move here has no score bits packed
// into it, so sorting by move quality lives
// in internal/movegen's OrderMoves against a parallel score slice instead
// of as a method on MoveSlice itself.
type MoveSlice []types.Move

// NewMoveSlice creates a new move slice with the given capacity and 0 elements.
func NewMoveSlice(cap int) *MoveSlice {
	moves := make([]types.Move, 0, cap)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice.
func (ms *MoveSlice) Len() int {
	return len(*ms)
}

// Cap returns the capacity of the slice.
func (ms *MoveSlice) Cap() int {
	return cap(*ms)
}

// PushBack appends an element at the end of the slice.
func (ms *MoveSlice) PushBack(m types.Move) {
	*ms = append(*ms, m)
}

// At returns the move at index i in the slice without removing it.
// Index will be checked against bounds and panics if out of bounds.
func (ms *MoveSlice) At(i int) types.Move {
	if i < 0 || i >= len(*ms) {
		panic("MoveSlice: index out of bounds")
	}
	return (*ms)[i]
}

// Set puts a move at index i in the slice.
// Index will be checked against bounds and panics if out of bounds.
func (ms *MoveSlice) Set(i int, move types.Move) {
	if i < 0 || i >= len(*ms) {
		panic("MoveSlice: index out of bounds")
	}
	(*ms)[i] = move
}

// Filter removes all elements from the MoveSlice for which the given call
// to func will return false. Reuses the underlying array.
func (ms *MoveSlice) Filter(f func(index int) bool) {
	b := (*ms)[:0]
	for i, x := range *ms {
		if f(i) {
			b = append(b, x)
		}
	}
	*ms = b
}

// Clone copies the MoveSlice into a newly created MoveSlice doing a deep copy.
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make([]types.Move, ms.Len(), ms.Cap())
	copy(dest, *ms)
	return (*MoveSlice)(&dest)
}

// ForEach is a simple range loop calling the given function on each element
// in stored order.
func (ms *MoveSlice) ForEach(f func(index int)) {
	for index := range *ms {
		f(index)
	}
}

// Clear removes all moves from the slice, but retains the current capacity.
// This is useful when repeatedly reusing the slice at high frequency to
// avoid GC during reuse.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// String returns a string representation of a slice of moves.
func (ms *MoveSlice) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("MoveList: [%d] { ", len(*ms)))
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString(" }")
	return b.String()
}
