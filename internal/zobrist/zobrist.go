// Package zobrist builds the random 64-bit key tables for position
// hashing: one token per (square, piece), one per castling-rights
// value, one per en-passant file, and one for side-to-move. Keys compose
// by XOR, so incremental updates never need the whole table.
package zobrist

import (
	"fmt"
	"sync"

	"github.com/corvidchess/chesscore/internal/types"
)

// Key is a 64-bit Zobrist hash.
type Key uint64

// InitializationOrderError mirrors internal/attacks's: a key lookup
// happened before Init() ran.
type InitializationOrderError struct{ Op string }

func (e InitializationOrderError) Error() string {
	return fmt.Sprintf("zobrist: %s called before zobrist.Init()", e.Op)
}

var (
	initOnce sync.Once
	initDone bool

	pieceKeys     [types.PieceLength][types.SqLength]Key
	castleKeys    [types.CastlingAny + 1]Key
	epFileKeys    [8]Key
	sideToMoveKey Key
)

// Init builds every key table. Idempotent.
func Init() {
	initOnce.Do(func() {
		r := newRandom(1070372)
		for pc := types.Piece(0); pc < types.PieceLength; pc++ {
			for sq := types.SqA1; sq < types.SqNone; sq++ {
				pieceKeys[pc][sq] = Key(r.rand64())
			}
		}
		for cr := types.CastlingRights(0); cr <= types.CastlingAny; cr++ {
			castleKeys[cr] = Key(r.rand64())
		}
		for f := types.FileA; f <= types.FileH; f++ {
			epFileKeys[f] = Key(r.rand64())
		}
		sideToMoveKey = Key(r.rand64())
		initDone = true
	})
}

func checkInit(op string) {
	if !initDone {
		panic(InitializationOrderError{Op: op})
	}
}

// Piece returns the token for a piece standing on sq.
func Piece(sq types.Square, p types.Piece) Key {
	checkInit("Piece")
	return pieceKeys[p][sq]
}

// Castle returns the token for a given castling-rights value.
func Castle(rights types.CastlingRights) Key {
	checkInit("Castle")
	return castleKeys[rights]
}

// EnPassant returns the token for an en-passant target on file f, or 0
// if sq is SqNone (no en-passant rights this ply).
func EnPassant(sq types.Square) Key {
	checkInit("EnPassant")
	if sq == types.SqNone {
		return 0
	}
	return epFileKeys[sq.FileOf()]
}

// SideToMove returns the token XORed in whenever Black is to move.
func SideToMove() Key {
	checkInit("SideToMove")
	return sideToMoveKey
}

// random is the xorshift64star PRNG used to seed the key tables
// (Stockfish's generator).
type random struct{ s uint64 }

func newRandom(seed uint64) *random {
	if seed == 0 {
		panic("zobrist: seed must not be 0")
	}
	return &random{s: seed}
}

func (r *random) rand64() uint64 {
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	r.s ^= r.s >> 12
	return r.s * 2685821657736338717
}
