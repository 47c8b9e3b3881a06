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

// Package movegen generates pseudo-legal and legal moves over magic-bitboard
// attack tables, splits them into capture/quiet/promotion/
// castle/evasion sets, and orders them for alpha-beta search.
package movegen

import (
	"regexp"
	"strings"

	"github.com/corvidchess/chesscore/internal/assert"
	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/moveslice"
	"github.com/corvidchess/chesscore/internal/position"
	"github.com/corvidchess/chesscore/internal/types"
)

// MaxMoves bounds a position's pseudo-legal move count.
const MaxMoves = 128

// GenMode selects which halves of a move set to generate.
type GenMode int

const (
	GenCap    GenMode = 1 << iota // captures and capture-promotions
	GenNonCap                     // quiet moves, quiet promotions, castling
	GenAll    = GenCap | GenNonCap
)

// Generator produces move lists for a Position, reusing its internal
// buffers across calls to stay allocation-free on the hot path.
type Generator struct {
	pseudo *moveslice.MoveSlice
	legal  *moveslice.MoveSlice
	quiet  *moveslice.MoveSlice
}

// New returns a Generator with preallocated buffers.
func New() *Generator {
	return &Generator{
		pseudo: moveslice.NewMoveSlice(MaxMoves),
		legal:  moveslice.NewMoveSlice(MaxMoves),
		quiet:  moveslice.NewMoveSlice(MaxMoves),
	}
}

// PseudoLegalMoves generates pseudo-legal moves for p's side to move:
// moves that are legal except they may leave the mover's king in check,
// left to callers to validate via Position.MakeMove's return. When p is in check, only evasions are emitted - king moves,
// interpositions and captures of the checker, or in double check, only
// king moves.
func (g *Generator) PseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	g.pseudo.Clear()
	stm := p.SideToMove()
	evasionMask := evasionTargets(p, stm)

	generatePawnMoves(p, mode, stm, evasionMask, g.pseudo)
	generateOfficerMoves(p, mode, stm, evasionMask, g.pseudo)
	generateKingMoves(p, mode, stm, g.pseudo)
	if mode&GenNonCap != 0 {
		generateCastling(p, stm, g.pseudo)
	}
	if assert.DEBUG {
		assert.Assert(g.pseudo.Len() <= MaxMoves, "PseudoLegalMoves: %d moves exceeds MaxMoves", g.pseudo.Len())
	}
	return g.pseudo
}

// LegalMoves filters PseudoLegalMoves(GenAll) through make/unmake.
func (g *Generator) LegalMoves(p *position.Position) *moveslice.MoveSlice {
	pseudo := g.PseudoLegalMoves(p, GenAll)
	g.legal.Clear()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if p.MakeMove(m) {
			g.legal.PushBack(m)
		}
		p.UnmakeMove()
	}
	return g.legal
}

// QuiescenceMoves generates the narrower set used at alpha-beta leaves:
// captures, queen/knight promotions, and moves giving check.
func (g *Generator) QuiescenceMoves(p *position.Position) *moveslice.MoveSlice {
	pseudo := g.PseudoLegalMoves(p, GenAll)
	g.quiet.Clear()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if m.IsCapture() {
			g.quiet.PushBack(m)
			continue
		}
		if m.IsPromotion() && (m.PromotionType() == types.Queen || m.PromotionType() == types.Knight) {
			g.quiet.PushBack(m)
			continue
		}
		if p.MakeMove(m) {
			if p.HasCheck() {
				p.UnmakeMove()
				g.quiet.PushBack(m)
				continue
			}
		}
		p.UnmakeMove()
	}
	return g.quiet
}

// HasLegalMove reports whether p's side to move has at least one legal
// move, short-circuiting the first legal one found.
func (g *Generator) HasLegalMove(p *position.Position) bool {
	pseudo := g.PseudoLegalMoves(p, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		ok := p.MakeMove(m)
		p.UnmakeMove()
		if ok {
			return true
		}
	}
	return false
}

// HistoryTable supplies the history-heuristic term of OrderMoves. Kept as
// an interface rather than importing internal/history directly, so movegen
// carries no dependency on the history package (history itself imports
// neither movegen nor position).
type HistoryTable interface {
	Get(ctm types.Color, from, to types.Square) int64
}

// pvBonus dominates every other ordering term so the PV move always sorts
// first.
const pvBonus = 1 << 24

// OrderMoves scores and selection-sorts ml descending: PV bonus (if the
// move is pvMove) plus history count plus SEE (for captures/en-passant).
// When quiescence is true, capturing moves with a negative SEE are
// dropped.
func OrderMoves(p *position.Position, ml *moveslice.MoveSlice, pvMove types.Move, hist HistoryTable, quiescence bool) {
	n := ml.Len()
	var scoreBuf [MaxMoves]int64
	scores := scoreBuf[:n]
	var seeBuf [MaxMoves]int64
	sees := seeBuf[:n]
	stm := p.SideToMove()
	for i := 0; i < n; i++ {
		m := ml.At(i)
		var score int64
		if m == pvMove {
			score += pvBonus
		}
		if hist != nil {
			score += hist.Get(stm, m.From(), m.To())
		}
		if m.IsCapture() || m.IsEnPassant() {
			sees[i] = int64(See(p, m))
			score += sees[i]
		}
		scores[i] = score
	}

	if quiescence {
		i := 0
		for i < ml.Len() {
			m := ml.At(i)
			if m.IsCapture() && sees[i] < 0 {
				last := ml.Len() - 1
				ml.Set(i, ml.At(last))
				scores[i] = scores[last]
				sees[i] = sees[last]
				*ml = (*ml)[:last]
				continue
			}
			i++
		}
		n = ml.Len()
	}

	// selection sort descending.
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			mi, mb := ml.At(i), ml.At(best)
			ml.Set(i, mb)
			ml.Set(best, mi)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// evasionTargets returns the set of destination squares non-king moves
// may land on: every square when stm isn't in check, the checker's square
// plus the interposing squares when in single check, and the empty set
// (no non-king move can help) in double check.
func evasionTargets(p *position.Position, stm types.Color) types.Bitboard {
	if !p.HasCheck() {
		return types.BbAll
	}
	kingSq := p.Board.KingSquare(stm)
	checkers := p.Board.AttacksOn(kingSq) & p.Board.Occupied(stm.Flip())
	if types.Popcount(checkers) != 1 {
		return 0
	}
	checkerSq := types.Getlsb(checkers)
	return types.Mask(checkerSq) | types.Between(kingSq, checkerSq)
}

func generateOfficerMoves(p *position.Position, mode GenMode, stm types.Color, evasionMask types.Bitboard, out *moveslice.MoveSlice) {
	occAll := p.Board.OccupiedAll()
	enemy := p.Board.Occupied(stm.Flip())
	for pt := types.Knight; pt <= types.Queen; pt++ {
		for pieces := p.Board.PiecesOf(stm, pt); pieces != 0; {
			fromSq, rest := types.Poplsb(pieces)
			pieces = rest

			var targets types.Bitboard
			switch pt {
			case types.Knight:
				targets = attacks.Knight(fromSq)
			case types.Bishop:
				targets = attacks.Bishop(fromSq, occAll)
			case types.Rook:
				targets = attacks.Rook(fromSq, occAll)
			case types.Queen:
				targets = attacks.Queen(fromSq, occAll)
			}
			targets &= evasionMask

			if mode&GenCap != 0 {
				for caps := targets & enemy; caps != 0; {
					toSq, rest2 := types.Poplsb(caps)
					caps = rest2
					out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{Capture: true}))
				}
			}
			if mode&GenNonCap != 0 {
				for quiets := targets &^ occAll; quiets != 0; {
					toSq, rest2 := types.Poplsb(quiets)
					quiets = rest2
					out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{}))
				}
			}
		}
	}
}

func generateKingMoves(p *position.Position, mode GenMode, stm types.Color, out *moveslice.MoveSlice) {
	fromSq := p.Board.KingSquare(stm)
	occAll := p.Board.OccupiedAll()
	targets := attacks.King(fromSq) &^ p.Board.Occupied(stm)

	if mode&GenCap != 0 {
		for caps := targets & p.Board.Occupied(stm.Flip()); caps != 0; {
			toSq, rest := types.Poplsb(caps)
			caps = rest
			out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{Capture: true}))
		}
	}
	if mode&GenNonCap != 0 {
		for quiets := targets &^ occAll; quiets != 0; {
			toSq, rest := types.Poplsb(quiets)
			quiets = rest
			out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{}))
		}
	}
}

func generateCastling(p *position.Position, stm types.Color, out *moveslice.MoveSlice) {
	// Castling is rejected out of check outright; through-check and
	// into-check are rejected below by testing the transited squares.
	if p.HasCheck() || p.CastlingRights() == types.CastlingNone {
		return
	}
	occ := p.Board.OccupiedAll()
	opp := stm.Flip()

	if stm == types.White {
		if p.CastlingRights().Has(types.WhiteOO) &&
			types.Between(types.SqE1, types.SqH1)&occ == 0 &&
			!p.Board.IsAttacked(types.SqF1, opp) && !p.Board.IsAttacked(types.SqG1, opp) {
			out.PushBack(types.NewMove(types.SqE1, types.SqG1, types.PtNone, types.MoveFlags{CastleK: true}))
		}
		if p.CastlingRights().Has(types.WhiteOOO) &&
			types.Between(types.SqE1, types.SqA1)&occ == 0 &&
			!p.Board.IsAttacked(types.SqD1, opp) && !p.Board.IsAttacked(types.SqC1, opp) {
			out.PushBack(types.NewMove(types.SqE1, types.SqC1, types.PtNone, types.MoveFlags{CastleQ: true}))
		}
	} else {
		if p.CastlingRights().Has(types.BlackOO) &&
			types.Between(types.SqE8, types.SqH8)&occ == 0 &&
			!p.Board.IsAttacked(types.SqF8, opp) && !p.Board.IsAttacked(types.SqG8, opp) {
			out.PushBack(types.NewMove(types.SqE8, types.SqG8, types.PtNone, types.MoveFlags{CastleK: true}))
		}
		if p.CastlingRights().Has(types.BlackOOO) &&
			types.Between(types.SqE8, types.SqA8)&occ == 0 &&
			!p.Board.IsAttacked(types.SqD8, opp) && !p.Board.IsAttacked(types.SqC8, opp) {
			out.PushBack(types.NewMove(types.SqE8, types.SqC8, types.PtNone, types.MoveFlags{CastleQ: true}))
		}
	}
}

var promotionKinds = [4]types.PieceType{types.Queen, types.Knight, types.Rook, types.Bishop}

func generatePawnMoves(p *position.Position, mode GenMode, stm types.Color, evasionMask types.Bitboard, out *moveslice.MoveSlice) {
	board := p.Board
	pawns := board.PiecesOf(stm, types.Pawn)
	occAll := board.OccupiedAll()
	enemy := board.Occupied(stm.Flip())
	dir := stm.PushDirection()
	promRank := types.RankBb(stm.PromotionRank())

	if mode&GenCap != 0 {
		for _, capDir := range [2]types.Direction{dir + types.East, dir + types.West} {
			targets := types.Shift(pawns, capDir) & enemy & evasionMask
			promCaps := targets & promRank
			for promCaps != 0 {
				toSq, rest := types.Poplsb(promCaps)
				promCaps = rest
				fromSq := toSq.To(-capDir)
				for _, pt := range promotionKinds {
					out.PushBack(types.NewMove(fromSq, toSq, pt, types.MoveFlags{Capture: true, Promotion: true}))
				}
			}
			plain := targets &^ promRank
			for plain != 0 {
				toSq, rest := types.Poplsb(plain)
				plain = rest
				fromSq := toSq.To(-capDir)
				out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{Capture: true}))
			}
		}

		if epSq := p.EnPassantSquare(); epSq != types.SqNone {
			capturedPawnSq := epSq.To(stm.Flip().PushDirection())
			checkers := board.AttacksOn(board.KingSquare(stm)) & enemy
			allowed := !p.HasCheck() || (types.Popcount(checkers) == 1 && checkers == types.Mask(capturedPawnSq))
			if allowed {
				for _, capDir := range [2]types.Direction{dir + types.East, dir + types.West} {
					if from := types.Shift(types.Mask(epSq), -capDir) & pawns; from != 0 {
						fromSq := types.Getlsb(from)
						out.PushBack(types.NewMove(fromSq, epSq, types.PtNone, types.MoveFlags{Capture: true, EnPassant: true}))
					}
				}
			}
		}
	}

	if mode&GenNonCap != 0 {
		push1Raw := types.Shift(pawns, dir) &^ occAll
		push1 := push1Raw & evasionMask

		promPush := push1 & promRank
		for promPush != 0 {
			toSq, rest := types.Poplsb(promPush)
			promPush = rest
			fromSq := toSq.To(-dir)
			for _, pt := range promotionKinds {
				out.PushBack(types.NewMove(fromSq, toSq, pt, types.MoveFlags{Promotion: true}))
			}
		}
		quietPush := push1 &^ promRank
		for quietPush != 0 {
			toSq, rest := types.Poplsb(quietPush)
			quietPush = rest
			fromSq := toSq.To(-dir)
			out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{}))
		}

		midRank := types.RankBb(types.Rank3)
		if stm == types.Black {
			midRank = types.RankBb(types.Rank6)
		}
		push2 := types.Shift(push1Raw&midRank, dir) &^ occAll & evasionMask
		for push2 != 0 {
			toSq, rest := types.Poplsb(push2)
			push2 = rest
			fromSq := toSq.To(-dir).To(-dir)
			out.PushBack(types.NewMove(fromSq, toSq, types.PtNone, types.MoveFlags{DoublePush: true}))
		}
	}
}

var uciMoveRe = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([qrbn])?$`)

// FromUci matches a 4- or 5-character UCI move string against p's pseudo-
// legal moves, returning the matching Move and true, or MoveNone and false.
func (g *Generator) FromUci(p *position.Position, uci string) (types.Move, bool) {
	m := uciMoveRe.FindStringSubmatch(strings.ToLower(uci))
	if m == nil {
		return types.MoveNone, false
	}
	from, to := types.MakeSquare(m[1]), types.MakeSquare(m[2])
	var promo types.PieceType
	if m[3] != "" {
		switch m[3] {
		case "q":
			promo = types.Queen
		case "r":
			promo = types.Rook
		case "b":
			promo = types.Bishop
		case "n":
			promo = types.Knight
		}
	}

	pseudo := g.PseudoLegalMoves(p, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		cand := pseudo.At(i)
		if cand.From() != from || cand.To() != to {
			continue
		}
		if cand.IsPromotion() && cand.PromotionType() != promo {
			continue
		}
		return cand, true
	}
	return types.MoveNone, false
}

// MakeMoveUci parses a 4- or 5-character UCI move (e2e4, a7a8q), matches
// it against p's generated pseudo-legal moves including promotion kind,
// makes it, and returns whether it was legal. It lives here rather than on Position itself
// since matching requires move generation, which would close an import
// cycle if Position depended on it directly.
func MakeMoveUci(p *position.Position, uci string) bool {
	g := New()
	m, ok := g.FromUci(p, uci)
	if !ok {
		return false
	}
	return p.MakeMove(m)
}
