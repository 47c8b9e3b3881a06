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

// searchConfiguration holds the tunables for both drivers AlphaBetaSearch
// and MctsSearch share or need independently.
type searchConfiguration struct {
	// Lazy-SMP
	NumWorkers int

	// Stop conditions
	MaxNodes   uint64
	MoveTimeMs int64

	// Transposition table, shared by both drivers
	UseTT  bool
	TTSize int // MB

	// Alpha-beta only
	UseQuiescence bool
	UseSEE        bool

	// MCTS only
	MctsArenaCapacity int
	UctConstant       float64
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.NumWorkers = 1

	Settings.Search.MaxNodes = 0
	Settings.Search.MoveTimeMs = 0

	Settings.Search.UseTT = true
	Settings.Search.TTSize = 128

	Settings.Search.UseQuiescence = true
	Settings.Search.UseSEE = true

	Settings.Search.MctsArenaCapacity = 10_000_000
	Settings.Search.UctConstant = 1.41
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {}
