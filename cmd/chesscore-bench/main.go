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

// chesscore-bench drives the engine core directly: load a position, run
// one of the two search drivers against node/time limits, print what the
// callbacks report. It is a wiring demo and benchmark harness, not a
// protocol frontend.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/chesscore"
	"github.com/corvidchess/chesscore/internal/config"
	"github.com/corvidchess/chesscore/internal/logging"
	"github.com/corvidchess/chesscore/internal/movegen"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/search"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/util"
	"github.com/corvidchess/chesscore/internal/version"
)

var out = message.NewPrinter(language.German)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchlogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	driver := flag.String("driver", "alphabeta", "search driver to use\n(alphabeta|mcts)")
	fen := flag.String("fen", position.StartFen, "position to search or perft")
	movetime := flag.Int("movetime", 5000, "search time per position in milliseconds\n0 means no time limit")
	nodes := flag.Uint64("nodes", 0, "node budget for the search\n0 means no node limit")
	workers := flag.Int("workers", 0, "number of search workers\n0 keeps the configured default")
	perft := flag.Int("perft", 0, "runs perft on -fen up to the given depth instead of searching")
	cpuProfile := flag.Bool("cpuprofile", false, "writes a cpu profile to the working directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	// this needs to be set before config.Setup() is called. Otherwise the default will be used.
	config.ConfFile = *configFile
	config.Setup()

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchlogLvl]; found {
		config.SearchLogLevel = lvl
	}
	logging.GetLog()

	if *workers > 0 {
		config.Settings.Search.NumWorkers = *workers
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		// go tool pprof -http=localhost:8080 chesscore-bench cpu.pprof
	}

	chesscore.Init()

	p, err := position.FromFen(*fen)
	if err != nil {
		fmt.Println("invalid fen:", err)
		os.Exit(1)
	}

	if *perft > 0 {
		runPerft(p, *perft)
		return
	}

	runSearch(p, *driver, *nodes, int64(*movetime))
}

func runPerft(p *position.Position, maxDepth int) {
	for d := 1; d <= maxDepth; d++ {
		start := time.Now()
		leaves := movegen.Perft(p, d)
		elapsed := time.Since(start)
		out.Printf("perft(%d) = %d (%d ms, %d nps)\n",
			d, leaves, elapsed.Milliseconds(), util.Nps(leaves, elapsed))
	}
}

func runSearch(p *position.Position, driver string, maxNodes uint64, movetimeMs int64) {
	dispatch := search.NewDispatch()
	if driver == "mcts" {
		dispatch.SetType(search.DriverMcts)
	}
	dispatch.Load(p)

	done := make(chan types.Move, 1)
	dispatch.Start(
		search.Limits{MaxNodes: maxNodes, MoveTimeMs: movetimeMs},
		func(move types.Move) { done <- move },
		func(info search.SearchInfo) { out.Println(info.String()) },
	)
	best := <-done
	out.Printf("bestmove %s\n", best.String())
}

func printVersionInfo() {
	out.Printf("chesscore-bench %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
