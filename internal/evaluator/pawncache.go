/*
 * chesscore - a chess engine core in Go
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package evaluator

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"

	"github.com/corvidchess/chesscore/internal/config"
	myLogging "github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

const (
	// MaxSizeInMB is the largest pawn cache size this engine will honor.
	MaxSizeInMB = 1_024

	// EntrySize is the in-memory size in bytes for each pawn cache entry.
	EntrySize = 16
)

type pawnCache struct {
	log                *logging.Logger
	data               []cacheEntry
	sizeInByte         uint64
	maxNumberOfEntries uint64
	hashKeyMask        uint64
	entries            uint64
	hits               uint64
	misses             uint64
	replace            uint64
}

type cacheEntry struct {
	pawnKey zobrist.Key
	score   types.Score
}

func newPawnCache() *pawnCache {
	pc := &pawnCache{log: myLogging.GetLog()}
	pc.resize(config.Settings.Eval.PawnCacheSize)
	return pc
}

func (pc *pawnCache) resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		pc.log.Error(out.Sprintf("requested pawn cache size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	pc.sizeInByte = uint64(sizeInMByte) * types.MB
	pc.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(pc.sizeInByte/EntrySize))))
	pc.hashKeyMask = pc.maxNumberOfEntries - 1

	if pc.sizeInByte == 0 {
		pc.maxNumberOfEntries = 0
	}
	pc.sizeInByte = pc.maxNumberOfEntries * EntrySize

	pc.data = make([]cacheEntry, pc.maxNumberOfEntries)

	pc.log.Info(out.Sprintf("pawn cache: %d MByte, %d entries (%d Byte each, %d MByte requested)",
		pc.sizeInByte/types.MB, pc.maxNumberOfEntries, unsafe.Sizeof(cacheEntry{}), sizeInMByte))
}

// getEntry returns the entry for key, or nil on a miss or a hash collision.
func (pc *pawnCache) getEntry(key zobrist.Key) *cacheEntry {
	if pc.maxNumberOfEntries == 0 {
		return nil
	}
	e := &pc.data[pc.hash(key)]
	if e.pawnKey == key {
		pc.hits++
		return e
	}
	pc.misses++
	return nil
}

// put stores score for the pawn structure keyed by key, replacing
// whatever else hashed to the same slot.
func (pc *pawnCache) put(key zobrist.Key, score types.Score) {
	if pc.maxNumberOfEntries == 0 {
		return
	}
	e := &pc.data[pc.hash(key)]
	if e.pawnKey == 0 {
		pc.entries++
	} else if e.pawnKey != key {
		pc.replace++
	}
	e.pawnKey = key
	e.score = score
}

// clear empties the cache and resets its statistics.
func (pc *pawnCache) clear() {
	pc.data = make([]cacheEntry, pc.maxNumberOfEntries)
	pc.entries = 0
	pc.hits = 0
	pc.misses = 0
	pc.replace = 0
}

// len returns the number of non-empty entries in the cache.
func (pc *pawnCache) len() uint64 {
	return pc.entries
}

func (pc *pawnCache) hash(key zobrist.Key) uint64 {
	return uint64(key) & pc.hashKeyMask
}
