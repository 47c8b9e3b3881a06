// Package attacks builds the one-time-initialised attack lookup tables:
// exhaustive king/knight/pawn tables, pawn span tables for
// passed/isolated/backward-pawn classification, and magic-indexed sliding
// attacks for rook/bishop/queen.
package attacks

import "github.com/corvidchess/chesscore/internal/types"

// magic holds one square's magic-bitboard lookup: a mask of "relevant"
// occupancy bits, the magic multiplier, the dense attack table it indexes
// into, and the shift that turns occupancy*magic into a table index.
// The magic-finding approach is Stockfish's.
type magic struct {
	mask    types.Bitboard
	number  types.Bitboard
	attacks []types.Bitboard
	shift   uint
}

func (m *magic) index(occupied types.Bitboard) uint {
	occ := occupied & m.mask
	occ *= m.number
	occ >>= m.shift
	return uint(occ)
}

var (
	rookTable  []types.Bitboard
	rookMagics [types.SqLength]magic

	bishopTable  []types.Bitboard
	bishopMagics [types.SqLength]magic
)

var rookDirections = [4]types.Direction{types.North, types.East, types.South, types.West}
var bishopDirections = [4]types.Direction{types.Northeast, types.Southeast, types.Southwest, types.Northwest}

// initMagics computes, for every square, the relevant-occupancy mask, a
// magic multiplier with no index collisions, and the dense attack table
// it indexes into. Uses the Carry-Rippler trick to enumerate every subset
// of the relevant-occupancy mask and a sparse xorshift64star RNG to find
// magics quickly, exactly as Stockfish does.
func initMagics(table *[]types.Bitboard, magics *[types.SqLength]magic, directions *[4]types.Direction) {
	seeds := [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]types.Bitboard
	var epoch [4096]int
	cnt := 0
	size := 0

	for sq := types.SqA1; sq < types.SqNone; sq++ {
		edges := ((types.RankBb(types.Rank1) | types.RankBb(types.Rank8)) &^ sq.RankOf().Bb()) |
			((types.FileBb(types.FileA) | types.FileBb(types.FileH)) &^ sq.FileOf().Bb())

		m := &magics[sq]
		m.mask = slidingAttack(directions, sq, types.BbZero) &^ edges
		m.shift = uint(64 - types.Popcount(m.mask))

		if sq == types.SqA1 {
			m.attacks = *table
		} else {
			m.attacks = magics[sq-1].attacks[size:]
		}

		b := types.BbZero
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		rng := newPrnG(seeds[sq.RankOf()])
		for i := 0; i < size; {
			for m.number = 0; ; {
				m.number = types.Bitboard(rng.sparseRand())
				if types.Popcount((m.number*m.mask)>>56) < 6 {
					break
				}
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// slidingAttack walks every direction from sq one step at a time, stopping
// at the board edge or the first occupied square (inclusive). Only used
// during table construction, never on the search hot path.
func slidingAttack(directions *[4]types.Direction, sq types.Square, occupied types.Bitboard) types.Bitboard {
	var attack types.Bitboard
	for _, d := range directions {
		s := sq
		for {
			s = s.To(d)
			if !s.IsValid() {
				break
			}
			attack |= types.Mask(s)
			if occupied&types.Mask(s) != 0 {
				break
			}
		}
	}
	return attack
}

// prnG is the xorshift64star generator Stockfish uses to find magics:
// 64-bit output, no warm-up needed, period 2^64-1.
type prnG struct{ s uint64 }

func newPrnG(seed uint64) *prnG { return &prnG{s: seed} }

func (r *prnG) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparseRand produces candidates with roughly 1/8th of their bits set,
// which converge on a collision-free magic faster than a uniform draw.
func (r *prnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}
