package board

import (
	"math/bits"

	"github.com/corvidchess/chesscore/internal/attacks"
	"github.com/corvidchess/chesscore/internal/types"
)

// Frontspans returns, for each of color c's pawns, the frontspan table
// entry (files-ahead mask), unioned across all of c's pawns.
func (b *Board) Frontspans(c types.Color) types.Bitboard {
	var out types.Bitboard
	for p := b.PiecesOf(c, types.Pawn); p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		out |= attacks.PawnFrontspan(c, sq)
	}
	return out
}

// Attackspans returns the union of the attackspan table entry (the two
// neighbour-file spans) over all of color c's pawns.
func (b *Board) Attackspans(c types.Color) types.Bitboard {
	var out types.Bitboard
	for p := b.PiecesOf(c, types.Pawn); p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		out |= attacks.PawnAttackspan(c, sq)
	}
	return out
}

// Passers returns color c's pawns with no opposing pawn in their
// attackspan+frontspan.
func (b *Board) Passers(c types.Color) types.Bitboard {
	opp := c.Flip()
	oppPawns := b.PiecesOf(opp, types.Pawn)
	var out types.Bitboard
	for p := b.PiecesOf(c, types.Pawn); p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		blockers := (attacks.PawnFrontspan(c, sq) | attacks.PawnAttackspan(c, sq)) & oppPawns
		if blockers == 0 {
			out |= types.Mask(sq)
		}
	}
	return out
}

// Isolated returns color c's pawns with no friendly pawn on a neighbouring
// file.
func (b *Board) Isolated(c types.Color) types.Bitboard {
	own := b.PiecesOf(c, types.Pawn)
	var out types.Bitboard
	for p := own; p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		f := sq.FileOf()
		var neighbours types.Bitboard
		if f > types.FileA {
			neighbours |= types.FileBb(f - 1)
		}
		if f < types.FileH {
			neighbours |= types.FileBb(f + 1)
		}
		if own&neighbours == 0 {
			out |= types.Mask(sq)
		}
	}
	return out
}

// Backward returns color c's pawns whose stop square is attacked by the
// opponent and not defended by c's own attackspan.
func (b *Board) Backward(c types.Color) types.Bitboard {
	own := b.PiecesOf(c, types.Pawn)
	opp := c.Flip()
	var out types.Bitboard
	for p := own; p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		stop := sq.To(c.PushDirection())
		if stop == types.SqNone {
			continue
		}
		attackedByOpp := attacks.Pawn(c, stop)&b.PiecesOf(opp, types.Pawn) != 0
		defendedByOwn := attacks.PawnAttackspan(c, sq)&own != 0
		if attackedByOpp && !defendedByOwn {
			out |= types.Mask(sq)
		}
	}
	return out
}

// Doubled returns, per file, color c's pawns beyond the first on that file.
func (b *Board) Doubled(c types.Color) types.Bitboard {
	own := b.PiecesOf(c, types.Pawn)
	var out types.Bitboard
	for f := types.FileA; f <= types.FileH; f++ {
		onFile := own & types.FileBb(f)
		if types.Popcount(onFile) <= 1 {
			continue
		}
		// keep the pawn closest to its own back rank, mark the rest doubled
		if c == types.White {
			out |= onFile &^ types.Mask(types.Getlsb(onFile))
		} else {
			out |= onFile &^ types.Mask(msb(onFile))
		}
	}
	return out
}

// PawnChains returns color c's pawns that are defended by another of
// color c's pawns.
func (b *Board) PawnChains(c types.Color) types.Bitboard {
	own := b.PiecesOf(c, types.Pawn)
	var defended types.Bitboard
	for p := own; p != 0; {
		sq, rest := types.Poplsb(p)
		p = rest
		defended |= attacks.Pawn(c, sq)
	}
	return own & defended
}

// msb returns the highest set square of b, or SqNone if empty.
func msb(b types.Bitboard) types.Square {
	if b == 0 {
		return types.SqNone
	}
	return types.Square(63 - bits.LeadingZeros64(uint64(b)))
}
