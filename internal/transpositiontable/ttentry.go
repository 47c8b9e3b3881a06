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

package transpositiontable

import (
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

// Entry is one transposition-table slot: the Zobrist key, the best move
// found, the search/static-eval values, and depth/value-type/age packed
// into a single uint16.
type Entry struct {
	key   zobrist.Key
	move  types.Move
	eval  int16
	value int16
	vmeta uint16 // age:3 vtype:2 depth:7, packed low to high
}

const (
	// EntrySize is the in-memory size in bytes of one Entry.
	EntrySize = 24

	ageMask    = uint16(0b0000_0000_0000_0111)
	vtypeMask  = uint16(0b0000_0000_0001_1000)
	vtypeShift = uint16(3)
	depthMask  = uint16(0b0000_1111_1110_0000)
	depthShift = uint16(5)
)

func (e *Entry) decreaseAge() {
	if e.Age() > 0 {
		e.vmeta--
	}
}

func (e *Entry) increaseAge() {
	// age saturates at 7; incrementing past that would carry into the
	// value-type bits
	if e.Age() < 7 {
		e.vmeta++
	}
}

// Key returns the full Zobrist key this entry was stored under.
func (e *Entry) Key() zobrist.Key { return e.key }

// Move returns the best move found for this position, or types.MoveNone.
func (e *Entry) Move() types.Move { return e.move }

// Value returns the search value stored for this entry.
func (e *Entry) Value() types.Value { return types.Value(e.value) }

// Eval returns the static evaluation stored for this entry.
func (e *Entry) Eval() types.Value { return types.Value(e.eval) }

// Depth returns the search depth this entry was stored at.
func (e *Entry) Depth() int8 {
	return int8((e.vmeta & depthMask) >> depthShift)
}

// Age returns how many searches have passed since this entry was
// written or last refreshed by a probe (0 = current generation).
func (e *Entry) Age() int8 {
	return int8(e.vmeta & ageMask)
}

// ValueType reports whether Value is exact or a bound.
func (e *Entry) ValueType() types.ValueType {
	return types.ValueType((e.vmeta & vtypeMask) >> vtypeShift)
}
