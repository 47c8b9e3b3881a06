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

// Package transpositiontable implements the shared transposition table,
// the one resource every Lazy-SMP search worker reads and writes
// concurrently. Table is not safe for concurrent Resize
// or Clear calls while a search is running; Probe and Put are safe to
// call from multiple goroutines at once.
package transpositiontable

import (
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/util"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB is the largest transposition table size this engine will honor.
const MaxSizeInMB = 65_536

// Table is the shared transposition table every search worker probes and
// updates.
type Table struct {
	log                *logging.Logger
	putMu              sync.Mutex
	data               []Entry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	Stats              Stats
}

// Stats holds cumulative usage counters for a Table.
type Stats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTable returns a Table sized to the largest power-of-2 entry count
// that fits in sizeInMByte megabytes.
func NewTable(sizeInMByte int) *Table {
	tt := &Table{log: myLogging.GetLog()}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize replaces the table's backing storage and clears every entry.
// Must not be called while a search is probing or putting concurrently.
func (tt *Table) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * types.MB
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/EntrySize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1

	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
	}
	tt.sizeInByte = tt.maxNumberOfEntries * EntrySize

	tt.data = make([]Entry, tt.maxNumberOfEntries)

	tt.log.Info(out.Sprintf("TT size %d MByte, %d entries (%d Byte each, %d MByte requested)",
		tt.sizeInByte/types.MB, tt.maxNumberOfEntries, unsafe.Sizeof(Entry{}), sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// GetEntry returns the entry at key's slot if its stored key matches, or
// nil on a miss or hash collision. Unlike Probe, does not touch stats or
// age the entry - used by diagnostics that shouldn't perturb the table.
func (tt *Table) GetEntry(key zobrist.Key) *Entry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		return e
	}
	return nil
}

// Probe looks up key, refreshing the entry's age and bumping hit/miss
// stats. Returns nil on a miss or hash collision.
func (tt *Table) Probe(key zobrist.Key) *Entry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	tt.Stats.numberOfProbes++
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		e.decreaseAge()
		tt.Stats.numberOfHits++
		return e
	}
	tt.Stats.numberOfMisses++
	return nil
}

// Put stores a search result for key: a new entry if the slot was empty,
// an overwrite if the slot held a different position searched less deeply
// (or equally deeply with an age above 1), or
// an in-place update if the slot already held this same position.
// Safe to call from multiple Lazy-SMP
// worker goroutines at once: writes are serialised by a single table-wide
// lock.
func (tt *Table) Put(key zobrist.Key, move types.Move, depth int8, value types.Value, vt types.ValueType, eval types.Value) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	tt.putMu.Lock()
	defer tt.putMu.Unlock()

	e := &tt.data[tt.hash(key)]
	tt.Stats.numberOfPuts++

	if e.key == 0 {
		tt.numberOfEntries++
		e.key = key
		e.move = move
		e.eval = int16(eval)
		e.value = int16(value)
		e.vmeta = uint16(depth)<<depthShift | uint16(vt)<<vtypeShift | 1
		return
	}

	if e.key != key {
		tt.Stats.numberOfCollisions++
		// Replace only if the new entry is strictly deeper, or equally
		// deep while the slot's prior entry has an age above 1.
		if depth > e.Depth() || (depth == e.Depth() && e.Age() > 1) {
			tt.Stats.numberOfOverwrites++
			e.key = key
			e.move = move
			e.eval = int16(eval)
			e.value = int16(value)
			e.vmeta = uint16(depth)<<depthShift | uint16(vt)<<vtypeShift | 1
		}
		return
	}

	// Same position already stored: refresh whichever fields the
	// caller supplied, preserving the rest.
	tt.Stats.numberOfUpdates++
	if move != types.MoveNone {
		e.move = move
	}
	if eval != types.ValueNA {
		e.eval = int16(eval)
	}
	if value != types.ValueNA {
		e.value = int16(value)
		e.vmeta = uint16(depth)<<depthShift | uint16(vt)<<vtypeShift | 1
	}
}

// Clear empties the table and resets its statistics.
func (tt *Table) Clear() {
	tt.data = make([]Entry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = Stats{}
}

// Hashfull reports how full the table is, in permille, per the UCI
// "hashfull" info field's convention.
func (tt *Table) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

func (tt *Table) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/types.MB, tt.maxNumberOfEntries, unsafe.Sizeof(Entry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of non-empty entries in the table.
func (tt *Table) Len() uint64 {
	return tt.numberOfEntries
}

// AgeEntries increments every stored entry's age by one, run once
// between searches so Put's replacement scheme prefers entries from the
// position just searched over stale ones from several moves ago.
func (tt *Table) AgeEntries() {
	start := time.Now()
	if tt.numberOfEntries > 0 {
		const numberOfGoroutines = 32
		var wg sync.WaitGroup
		wg.Add(numberOfGoroutines)
		slice := tt.maxNumberOfEntries / numberOfGoroutines
		for i := uint64(0); i < numberOfGoroutines; i++ {
			go func(i uint64) {
				defer wg.Done()
				begin := i * slice
				end := begin + slice
				if i == numberOfGoroutines-1 {
					end = tt.maxNumberOfEntries
				}
				for n := begin; n < end; n++ {
					if tt.data[n].key != 0 {
						tt.data[n].increaseAge()
					}
				}
			}(i)
		}
		wg.Wait()
	}
	tt.log.Debug(out.Sprintf("aged %d entries of %d in %d ms",
		tt.numberOfEntries, len(tt.data), time.Since(start).Milliseconds()))
}

func (tt *Table) hash(key zobrist.Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}
