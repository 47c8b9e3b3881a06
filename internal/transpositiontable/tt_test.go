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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/movegen"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

func TestMain(m *testing.M) {
	config.Setup()
	attacks.Init()
	zobrist.Init()
	m.Run()
}

func TestEntrySize(t *testing.T) {
	assert.EqualValues(t, 24, unsafe.Sizeof(Entry{}))
}

func TestNewTable(t *testing.T) {
	tt := NewTable(1)
	assert.EqualValues(t, 32_768, tt.maxNumberOfEntries)
	assert.EqualValues(t, 32_768, cap(tt.data))

	tt = NewTable(4)
	assert.EqualValues(t, 131_072, tt.maxNumberOfEntries)

	tt = NewTable(100)
	assert.EqualValues(t, 4_194_304, tt.maxNumberOfEntries)

	tt = NewTable(0)
	assert.EqualValues(t, 0, tt.maxNumberOfEntries)
	assert.Nil(t, tt.GetEntry(123))
	assert.Nil(t, tt.Probe(123))
}

func TestGetAndProbe(t *testing.T) {
	tt := NewTable(4)
	p := position.NewStandard()
	move := types.NewMove(types.SqE2, types.SqE4, types.PtNone, types.MoveFlags{DoublePush: true})

	tt.Put(p.Key(), move, 5, types.Value(10), types.ValueTypeNone, types.ValueNA)

	e := tt.GetEntry(p.Key())
	assert.Equal(t, p.Key(), e.Key())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 5, e.Depth())
	assert.EqualValues(t, 1, e.Age())

	// Probe decreases age.
	e = tt.Probe(p.Key())
	assert.EqualValues(t, 0, e.Age())
	e = tt.Probe(p.Key())
	assert.EqualValues(t, 0, e.Age()) // age does not go below 0

	if !movegen.MakeMoveUci(p, "e2e4") {
		t.Fatalf("e2e4 should be legal from the start position")
	}
	assert.Nil(t, tt.Probe(p.Key()))
}

func TestClear(t *testing.T) {
	tt := NewTable(1)
	var key zobrist.Key = 0xABCD

	tt.Put(key, types.MoveNone, 3, types.Value(50), types.ValueTypeExact, types.Value(50))
	assert.EqualValues(t, 1, tt.Len())

	tt.Clear()
	assert.EqualValues(t, 0, tt.Len())
	assert.Nil(t, tt.Probe(key))
	assert.EqualValues(t, Stats{}, tt.Stats)
}

func TestAgeEntries(t *testing.T) {
	tt := NewTable(1)
	var key zobrist.Key = 777

	tt.Put(key, types.MoveNone, 3, types.Value(1), types.ValueTypeExact, types.Value(1))
	e := tt.GetEntry(key)
	assert.EqualValues(t, 1, e.Age())

	tt.AgeEntries()
	e = tt.GetEntry(key)
	assert.EqualValues(t, 2, e.Age())
}

func TestPut(t *testing.T) {
	tt := NewTable(4)
	move := types.NewMove(types.SqE2, types.SqE4, types.PtNone, types.MoveFlags{DoublePush: true})

	tt.Put(111, move, 4, types.Value(111), types.ValueTypeAlpha, types.ValueNA)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfPuts)
	e := tt.Probe(111)
	assert.EqualValues(t, 111, e.Key())
	assert.EqualValues(t, move, e.Move())
	assert.EqualValues(t, 4, e.Depth())
	assert.EqualValues(t, types.ValueTypeAlpha, e.ValueType())
	assert.EqualValues(t, 0, e.Age())

	// Update in place: same key, different depth/value/type.
	tt.Put(111, move, 5, types.Value(112), types.ValueTypeBeta, types.ValueNA)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 2, tt.Stats.numberOfPuts)
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)
	assert.EqualValues(t, 0, tt.Stats.numberOfCollisions)
	e = tt.Probe(111)
	assert.EqualValues(t, 112, e.Value())
	assert.EqualValues(t, 5, e.Depth())
	assert.EqualValues(t, types.ValueTypeBeta, e.ValueType())

	// Collision: a different key hashing to the same slot, deeper, overwrites.
	collisionKey := zobrist.Key(111 + tt.maxNumberOfEntries)
	tt.Put(collisionKey, move, 6, types.Value(113), types.ValueTypeExact, types.ValueNA)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfCollisions)
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	e = tt.Probe(collisionKey)
	assert.EqualValues(t, collisionKey, e.Key())
	assert.EqualValues(t, 113, e.Value())

	// Collision at shallower depth than the occupant: dropped.
	collisionKey2 := zobrist.Key(111 + 2*tt.maxNumberOfEntries)
	tt.Put(collisionKey2, move, 4, types.Value(114), types.ValueTypeBeta, types.ValueNA)
	assert.EqualValues(t, 2, tt.Stats.numberOfCollisions)
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	assert.Nil(t, tt.Probe(collisionKey2))
	e = tt.Probe(collisionKey)
	assert.EqualValues(t, collisionKey, e.Key())
	assert.EqualValues(t, 113, e.Value())
}

func TestHashfull(t *testing.T) {
	tt := NewTable(1)
	assert.EqualValues(t, 0, tt.Hashfull())

	for i := uint64(1); i <= tt.maxNumberOfEntries/10; i++ {
		tt.Put(zobrist.Key(i), types.MoveNone, 1, types.Value(1), types.ValueTypeExact, types.ValueNA)
	}
	assert.Greater(t, tt.Hashfull(), 0)
}
