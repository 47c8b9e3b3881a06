package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidchess/chesscore/internal/board"
	"github.com/corvidchess/chesscore/internal/types"
)

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// InvalidFenError reports a malformed FEN record. The caller's previous
// position is untouched: FromFen builds into a fresh Position and only
// returns it on success.
type InvalidFenError struct {
	Field  string
	Reason string
}

func (e InvalidFenError) Error() string {
	return fmt.Sprintf("position: invalid FEN %s: %s", e.Field, e.Reason)
}

var fenPieceLetters = "PNBRQKpnbrqk"

func pieceFromFenChar(ch byte) (types.Piece, error) {
	idx := strings.IndexByte(fenPieceLetters, ch)
	if idx < 0 {
		return types.PieceNone, InvalidFenError{Field: "board", Reason: fmt.Sprintf("unknown piece letter %q", ch)}
	}
	c := types.White
	pt := types.PieceType(idx + 1)
	if idx >= 6 {
		c = types.Black
		pt = types.PieceType(idx - 6 + 1)
	}
	return types.MakePiece(c, pt), nil
}

func fenCharFromPiece(p types.Piece) byte {
	pt := p.TypeOf()
	idx := int(pt) - 1
	if p.ColorOf() == types.Black {
		idx += 6
	}
	return fenPieceLetters[idx]
}

// FromFen parses a FEN record into a Position. Only the
// board and side-to-move fields are mandatory; castling, en-passant,
// halfmove clock and fullmove number default to "-"/"-"/0/1 if omitted,
// matching FEN's common shortened form.
func FromFen(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, InvalidFenError{Field: "record", Reason: fmt.Sprintf("%q needs at least board and side-to-move fields", fen)}
	}

	b := board.New()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, InvalidFenError{Field: "board", Reason: fmt.Sprintf("%q must have 8 ranks", fields[0])}
	}
	for i, rankStr := range ranks {
		r := types.Rank8 - types.Rank(i)
		f := types.FileA
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				f += types.File(ch - '0')
				continue
			}
			if f > types.FileH {
				return nil, InvalidFenError{Field: "board", Reason: fmt.Sprintf("rank %q overflows 8 files", rankStr)}
			}
			p, err := pieceFromFenChar(ch)
			if err != nil {
				return nil, err
			}
			b.Place(types.SquareOf(f, r), p)
			f++
		}
	}

	p := &Position{Board: b}

	switch fields[1] {
	case "w":
		p.sideToMove = types.White
	case "b":
		p.sideToMove = types.Black
	default:
		return nil, InvalidFenError{Field: "side-to-move", Reason: fmt.Sprintf("%q is neither w nor b", fields[1])}
	}

	p.castlingRights = types.CastlingNone
	if len(fields) > 2 && fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castlingRights = p.castlingRights.Add(types.WhiteOO)
			case 'Q':
				p.castlingRights = p.castlingRights.Add(types.WhiteOOO)
			case 'k':
				p.castlingRights = p.castlingRights.Add(types.BlackOO)
			case 'q':
				p.castlingRights = p.castlingRights.Add(types.BlackOOO)
			default:
				return nil, InvalidFenError{Field: "castling", Reason: fmt.Sprintf("unknown letter %q", ch)}
			}
		}
	}

	p.epSquare = types.SqNone
	if len(fields) > 3 && fields[3] != "-" {
		sq := types.MakeSquare(fields[3])
		if sq == types.SqNone {
			return nil, InvalidFenError{Field: "en-passant", Reason: fmt.Sprintf("%q is not a square", fields[3])}
		}
		p.epSquare = sq
	}

	p.halfMoveClock = 0
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, InvalidFenError{Field: "halfmove clock", Reason: fmt.Sprintf("%q is not a number", fields[4])}
		}
		p.halfMoveClock = n
	}

	p.fullMoveNumber = 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, InvalidFenError{Field: "fullmove number", Reason: fmt.Sprintf("%q is not a number", fields[5])}
		}
		p.fullMoveNumber = n
	}

	p.refreshRootFrame()
	return p, nil
}

// ToFen renders the position as a FEN record.
func (p *Position) ToFen() string {
	var s strings.Builder
	for r := types.Rank8; ; r-- {
		empty := 0
		for f := types.FileA; f <= types.FileH; f++ {
			piece := p.Board.Piece(types.SquareOf(f, r))
			if piece == types.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				s.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			s.WriteByte(fenCharFromPiece(piece))
		}
		if empty > 0 {
			s.WriteString(strconv.Itoa(empty))
		}
		if r != types.Rank1 {
			s.WriteByte('/')
		}
		if r == types.Rank1 {
			break
		}
	}

	s.WriteByte(' ')
	s.WriteString(p.sideToMove.String())
	s.WriteByte(' ')
	s.WriteString(p.castlingRights.String())
	s.WriteByte(' ')
	s.WriteString(p.epSquare.String())
	s.WriteByte(' ')
	s.WriteString(strconv.Itoa(p.halfMoveClock))
	s.WriteByte(' ')
	s.WriteString(strconv.Itoa(p.fullMoveNumber))
	return s.String()
}
