package attacks

import (
	"fmt"
	"sync"

	"github.com/corvidchess/chesscore/internal/types"
)

// InitializationOrderError is raised when an attack lookup happens before
// Init() has run. Fatal: callers are expected to let it
// propagate and crash the process, not recover from it.
type InitializationOrderError struct {
	Op string
}

func (e InitializationOrderError) Error() string {
	return fmt.Sprintf("attacks: %s called before attacks.Init()", e.Op)
}

var (
	initOnce      sync.Once
	initDone      bool
	kingAttacks   [types.SqLength]types.Bitboard
	knightAttacks [types.SqLength]types.Bitboard
	pawnAttacks   [types.ColorLength][types.SqLength]types.Bitboard
	frontspan     [types.ColorLength][types.SqLength]types.Bitboard
	attackspan    [types.ColorLength][types.SqLength]types.Bitboard
)

// Init builds every table this package exposes. Idempotent; safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		precomputeNonSliders()
		precomputeSpans()
		initMagicBitboards()
		initDone = true
	})
}

func checkInit(op string) {
	if !initDone {
		panic(InitializationOrderError{Op: op})
	}
}

func initMagicBitboards() {
	rookTable = make([]types.Bitboard, 0x19000)
	bishopTable = make([]types.Bitboard, 0x1480)
	initMagics(&rookTable, &rookMagics, &rookDirections)
	initMagics(&bishopTable, &bishopMagics, &bishopDirections)
}

// precomputeNonSliders builds the exhaustive king/knight/pawn attack
// tables; magic tables cover the sliding pieces.
func precomputeNonSliders() {
	kingSteps := []types.Direction{
		types.North, types.Northeast, types.East, types.Southeast,
		types.South, types.Southwest, types.West, types.Northwest,
	}
	knightSteps := []types.Direction{
		types.North + types.North + types.East, types.North + types.East + types.East,
		types.South + types.East + types.East, types.South + types.South + types.East,
		types.South + types.South + types.West, types.South + types.West + types.West,
		types.North + types.West + types.West, types.North + types.North + types.West,
	}

	for sq := types.SqA1; sq < types.SqNone; sq++ {
		for _, d := range kingSteps {
			if to := sq.To(d); to.IsValid() {
				kingAttacks[sq] |= types.Mask(to)
			}
		}
		for _, d := range knightSteps {
			if to := knightStep(sq, d); to.IsValid() {
				knightAttacks[sq] |= types.Mask(to)
			}
		}
		if to := sq.To(types.Northeast); to.IsValid() {
			pawnAttacks[types.White][sq] |= types.Mask(to)
		}
		if to := sq.To(types.Northwest); to.IsValid() {
			pawnAttacks[types.White][sq] |= types.Mask(to)
		}
		if to := sq.To(types.Southeast); to.IsValid() {
			pawnAttacks[types.Black][sq] |= types.Mask(to)
		}
		if to := sq.To(types.Southwest); to.IsValid() {
			pawnAttacks[types.Black][sq] |= types.Mask(to)
		}
	}
}

// knightStep applies a two-direction composite step, rejecting any step
// that would wrap around a file edge partway through (e.g. North+North+East
// from a square on file H must not wrap to file A).
func knightStep(sq types.Square, d types.Direction) types.Square {
	cur := sq
	steps := decomposeKnightStep(d)
	for _, s := range steps {
		cur = cur.To(s)
		if cur == types.SqNone {
			return types.SqNone
		}
	}
	return cur
}

func decomposeKnightStep(d types.Direction) []types.Direction {
	switch d {
	case types.North + types.North + types.East:
		return []types.Direction{types.North, types.North, types.East}
	case types.North + types.East + types.East:
		return []types.Direction{types.North, types.East, types.East}
	case types.South + types.East + types.East:
		return []types.Direction{types.South, types.East, types.East}
	case types.South + types.South + types.East:
		return []types.Direction{types.South, types.South, types.East}
	case types.South + types.South + types.West:
		return []types.Direction{types.South, types.South, types.West}
	case types.South + types.West + types.West:
		return []types.Direction{types.South, types.West, types.West}
	case types.North + types.West + types.West:
		return []types.Direction{types.North, types.West, types.West}
	case types.North + types.North + types.West:
		return []types.Direction{types.North, types.North, types.West}
	default:
		return nil
	}
}

// precomputeSpans builds, per color and square, the frontspan (all
// squares straight ahead on the same file) and attackspan (all squares
// ahead on the two neighbouring files) used to classify passed, isolated
// and backward pawns.
func precomputeSpans() {
	for c := types.White; c <= types.Black; c++ {
		for sq := types.SqA1; sq < types.SqNone; sq++ {
			f := sq.FileOf()
			r := sq.RankOf()
			var front, attack types.Bitboard
			if c == types.White {
				for rr := r + 1; rr.IsValid(); rr++ {
					front |= types.Mask(types.SquareOf(f, rr))
					if f > types.FileA {
						attack |= types.Mask(types.SquareOf(f-1, rr))
					}
					if f < types.FileH {
						attack |= types.Mask(types.SquareOf(f+1, rr))
					}
				}
			} else {
				for rr := int(r) - 1; rr >= 0; rr-- {
					front |= types.Mask(types.SquareOf(f, types.Rank(rr)))
					if f > types.FileA {
						attack |= types.Mask(types.SquareOf(f-1, types.Rank(rr)))
					}
					if f < types.FileH {
						attack |= types.Mask(types.SquareOf(f+1, types.Rank(rr)))
					}
				}
			}
			frontspan[c][sq] = front
			attackspan[c][sq] = attack
		}
	}
}

// King returns king attacks from sq.
func King(sq types.Square) types.Bitboard {
	checkInit("King")
	return kingAttacks[sq]
}

// Knight returns knight attacks from sq.
func Knight(sq types.Square) types.Bitboard {
	checkInit("Knight")
	return knightAttacks[sq]
}

// Pawn returns the squares a color c pawn on sq attacks (not its pushes).
func Pawn(c types.Color, sq types.Square) types.Bitboard {
	checkInit("Pawn")
	return pawnAttacks[c][sq]
}

// PawnFrontspan returns the files-ahead span used to detect passed pawns.
func PawnFrontspan(c types.Color, sq types.Square) types.Bitboard {
	checkInit("PawnFrontspan")
	return frontspan[c][sq]
}

// PawnAttackspan returns the neighbour-file span used to detect isolated
// and backward pawns.
func PawnAttackspan(c types.Color, sq types.Square) types.Bitboard {
	checkInit("PawnAttackspan")
	return attackspan[c][sq]
}

// Rook returns rook attacks from sq given the board's current occupancy.
func Rook(sq types.Square, occupied types.Bitboard) types.Bitboard {
	checkInit("Rook")
	m := &rookMagics[sq]
	return m.attacks[m.index(occupied)]
}

// Bishop returns bishop attacks from sq given the board's current occupancy.
func Bishop(sq types.Square, occupied types.Bitboard) types.Bitboard {
	checkInit("Bishop")
	m := &bishopMagics[sq]
	return m.attacks[m.index(occupied)]
}

// Queen returns the union of rook and bishop attacks from sq.
func Queen(sq types.Square, occupied types.Bitboard) types.Bitboard {
	return Rook(sq, occupied) | Bishop(sq, occupied)
}

// Between returns the squares strictly between a and b if aligned; it
// delegates to internal/types, whose ray tables are built by the Go
// runtime's own package-init (always ready, no explicit Init() needed).
func Between(a, b types.Square) types.Bitboard {
	return types.Between(a, b)
}
