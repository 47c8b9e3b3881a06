package position

import (
	"github.com/corvidchess/chesscore/internal/types"
	"github.com/corvidchess/chesscore/internal/zobrist"
)

// Ply is one history frame: everything needed to undo a move
// and to detect repetitions, independent of the board itself.
type Ply struct {
	Move           types.Move
	CapturedPiece  types.Piece
	CapturedSquare types.Square
	CastlingRights types.CastlingRights
	EpSquare       types.Square
	HalfMoveClock  int
	FullMoveNumber int
	InCheck        bool
	WasCastle      bool
	WasEnPassant   bool
	Key            zobrist.Key
}

// maxPly bounds the preallocated history stack; a game exceeding this many
// plies is outside any realistic search horizon.
const maxPly = 1024
