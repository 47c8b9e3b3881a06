// Package board holds piece placement on 64 squares with maintained
// occupancy bitboards, a running Zobrist piece key and material sums.
// It is the layer underneath Position, which adds side-to-move, castling
// rights and move history on top.
package board

import (
	"strings"

	"github.com/corvidchess/chesscore/internal/assert"
	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

// Board is the 64-square piece placement plus derived occupancy, material
// and Zobrist state.
type Board struct {
	state [types.SqLength]types.Piece

	occAll   types.Bitboard
	occColor [types.ColorLength]types.Bitboard
	occPiece [types.PtLength]types.Bitboard

	kingSquare [types.ColorLength]types.Square

	materialMg      [types.ColorLength]int
	materialEg      [types.ColorLength]int
	nonPawnMaterial [types.ColorLength]int
	phase           int

	key zobrist.Key
}

// New returns an empty board.
func New() *Board {
	b := &Board{}
	for sq := range b.state {
		b.state[sq] = types.PieceNone
	}
	b.kingSquare[types.White] = types.SqNone
	b.kingSquare[types.Black] = types.SqNone
	return b
}

// Piece returns the piece on sq, PieceNone if empty.
func (b *Board) Piece(sq types.Square) types.Piece { return b.state[sq] }

// OccupiedAll returns the union of every piece on the board.
func (b *Board) OccupiedAll() types.Bitboard { return b.occAll }

// Occupied returns the squares occupied by pieces of color c.
func (b *Board) Occupied(c types.Color) types.Bitboard { return b.occColor[c] }

// Pieces returns the squares occupied by piece kind pt of either color.
func (b *Board) Pieces(pt types.PieceType) types.Bitboard { return b.occPiece[pt] }

// PiecesOf returns the squares occupied by color c's pt pieces.
func (b *Board) PiecesOf(c types.Color, pt types.PieceType) types.Bitboard {
	return b.occPiece[pt] & b.occColor[c]
}

// KingSquare returns color c's king square.
func (b *Board) KingSquare(c types.Color) types.Square { return b.kingSquare[c] }

// Key returns the running Zobrist key composed purely from piece placement
// (Position adds the side-to-move/castle/ep components on top).
func (b *Board) Key() zobrist.Key { return b.key }

// Material returns color c's middlegame and endgame material sums.
func (b *Board) Material(c types.Color) (mg, eg int) {
	return b.materialMg[c], b.materialEg[c]
}

// NonPawnMaterial returns color c's material excluding pawns.
func (b *Board) NonPawnMaterial(c types.Color) int { return b.nonPawnMaterial[c] }

// Phase returns the running sum of phase weights for pieces on the board.
func (b *Board) Phase() int { return b.phase }

// Place puts piece on sq. sq must be empty.
func (b *Board) Place(sq types.Square, piece types.Piece) {
	if assert.DEBUG {
		assert.Assert(sq.IsValid(), "Place: invalid square %d", int(sq))
		assert.Assert(piece.IsValid(), "Place: invalid piece %d", int(piece))
		assert.Assert(b.state[sq] == types.PieceNone, "Place: square %s occupied", sq.String())
	}
	c := piece.ColorOf()
	pt := piece.TypeOf()

	b.state[sq] = piece
	if pt == types.King {
		b.kingSquare[c] = sq
	}
	m := types.Mask(sq)
	b.occColor[c] |= m
	b.occPiece[pt] |= m
	b.occAll |= m

	b.key ^= zobrist.Piece(sq, piece)

	v := pt.ValueOf()
	b.materialMg[c] += v
	b.materialEg[c] += v
	if pt != types.Pawn {
		b.nonPawnMaterial[c] += v
	}
	b.phase += pt.PhaseWeight()
}

// Remove clears sq, which must be occupied, and returns the piece removed.
func (b *Board) Remove(sq types.Square) types.Piece {
	piece := b.state[sq]
	if assert.DEBUG {
		assert.Assert(piece != types.PieceNone, "Remove: square %s empty", sq.String())
	}
	c := piece.ColorOf()
	pt := piece.TypeOf()

	b.state[sq] = types.PieceNone
	m := types.Mask(sq)
	b.occColor[c] &^= m
	b.occPiece[pt] &^= m
	b.occAll &^= m

	b.key ^= zobrist.Piece(sq, piece)

	v := pt.ValueOf()
	b.materialMg[c] -= v
	b.materialEg[c] -= v
	if pt != types.Pawn {
		b.nonPawnMaterial[c] -= v
	}
	b.phase -= pt.PhaseWeight()
	return piece
}

// Replace puts piece on the occupied square sq and returns what was there.
func (b *Board) Replace(sq types.Square, piece types.Piece) types.Piece {
	prev := b.Remove(sq)
	b.Place(sq, piece)
	return prev
}

// AttacksOn returns every piece of either color attacking sq, found
// symmetrically: from sq, look outward as each piece kind would move, and
// intersect with where that kind's pieces actually are.
func (b *Board) AttacksOn(sq types.Square) types.Bitboard {
	occ := b.occAll
	var att types.Bitboard
	att |= attacks.Pawn(types.Black, sq) & b.PiecesOf(types.White, types.Pawn)
	att |= attacks.Pawn(types.White, sq) & b.PiecesOf(types.Black, types.Pawn)
	att |= attacks.Knight(sq) & b.occPiece[types.Knight]
	att |= attacks.King(sq) & b.occPiece[types.King]
	att |= attacks.Bishop(sq, occ) & (b.occPiece[types.Bishop] | b.occPiece[types.Queen])
	att |= attacks.Rook(sq, occ) & (b.occPiece[types.Rook] | b.occPiece[types.Queen])
	return att
}

// MaskIsAttacked reports whether any square in mask is attacked by a
// piece of color by.
func (b *Board) MaskIsAttacked(mask types.Bitboard, by types.Color) bool {
	for m := mask; m != 0; {
		sq, rest := types.Poplsb(m)
		m = rest
		if b.AttacksOn(sq)&b.occColor[by] != 0 {
			return true
		}
	}
	return false
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (b *Board) IsAttacked(sq types.Square, by types.Color) bool {
	if !sq.IsValid() {
		return false
	}
	return b.AttacksOn(sq)&b.occColor[by] != 0
}

func (b *Board) String() string {
	var s strings.Builder
	for r := types.Rank8; ; r-- {
		s.WriteString(r.String())
		s.WriteString(" | ")
		for f := types.FileA; f <= types.FileH; f++ {
			s.WriteString(b.Piece(types.SquareOf(f, r)).String())
			s.WriteString(" ")
		}
		s.WriteString("\n")
		if r == types.Rank1 {
			break
		}
	}
	s.WriteString("    ---------------\n    a b c d e f g h\n")
	return s.String()
}
