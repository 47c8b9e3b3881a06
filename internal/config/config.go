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

// Package config holds globally available configuration variables, set by
// defaults, a config.toml file, or overridden at runtime via Eval.SetOption.
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/corvidchess/chesscore/internal/util"
)

var (
	// ConfFile holds the path to the config file, relative to the working
	// directory.
	ConfFile = "./config.toml"

	// LogLevel is the general log level, overridable by the config file.
	LogLevel = 5

	// SearchLogLevel is the search package's own log level.
	SearchLogLevel = 5

	// TestLogLevel is the level used by _test.go files' loggers.
	TestLogLevel = 5

	// Settings is the global configuration, populated by Setup.
	Settings conf

	initialized = false
)

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup reads config.toml (falling back to defaults when absent or
// incomplete) and applies it to Settings. Idempotent: later calls are no-ops.
func Setup() {
	if initialized {
		return
	}
	path, _ := util.ResolveFile(ConfFile)
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("config file not found, using defaults:", err)
	}
	setupLogLvl()
	setupSearch()
	setupEval()
	initialized = true
}

// String renders the current search and evaluation settings via
// reflection, one field per line, for diagnostic dumps.
func (c *conf) String() string {
	var b strings.Builder
	b.WriteString("Search Config:\n")
	writeFields(&b, reflect.ValueOf(&c.Search).Elem())
	b.WriteString("\nEvaluation Config:\n")
	writeFields(&b, reflect.ValueOf(&c.Eval).Elem())
	return b.String()
}

func writeFields(b *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		fmt.Fprintf(b, "%-2d: %-28s %-6s = %v\n", i, t.Field(i).Name, f.Type(), f.Interface())
	}
}
