//go:build !debug

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

// Package assert gates debug invariants (square range, piece range,
// move-count ceiling, Zobrist invariance) behind the "debug" build tag,
// so release builds pay nothing for them.
package assert

// DEBUG reports whether assertions are compiled in. The Go compiler
// eliminates every `if assert.DEBUG { ... }` block entirely when this is
// false, so call sites pay no runtime cost in a release build.
const DEBUG = false

// Assert is a no-op in a release build. Callers still guard it with
// `if assert.DEBUG { ... }` so arguments that are themselves expensive to
// compute (e.g. a String() call) are never evaluated outside debug builds.
func Assert(test bool, msg string, a ...interface{}) {}
