package types

import "strings"

// Move is a 21-bit packed value: source square (6 bits), destination
// square (6 bits), promotion kind (3 bits) and six independent flag bits.
// A Move carries no sort score; ordering weights live alongside moves in
// a parallel slice (internal/movegen).
type Move uint32

const (
	moveFromShift     = 0
	moveToShift       = 6
	movePromoShift    = 12
	moveCaptureBit    = 15
	moveEpBit         = 16
	moveDoublePushBit = 17
	moveCastleKBit    = 18
	moveCastleQBit    = 19
	movePromoBit      = 20

	moveSquareMask = 0x3F
	movePromoMask  = 0x7
)

// MoveNone is the null-move sentinel; no generated move ever has an
// identical source and destination square.
const MoveNone Move = 0

// MoveFlags carries the independent flag bits for NewMove.
type MoveFlags struct {
	Capture    bool
	EnPassant  bool
	DoublePush bool
	CastleK    bool
	CastleQ    bool
	Promotion  bool
}

// NewMove packs a move. promo is only meaningful when flags.Promotion is set.
func NewMove(from, to Square, promo PieceType, flags MoveFlags) Move {
	m := Move(from)<<moveFromShift | Move(to)<<moveToShift | Move(promo)<<movePromoShift
	if flags.Capture {
		m |= 1 << moveCaptureBit
	}
	if flags.EnPassant {
		m |= 1 << moveEpBit
	}
	if flags.DoublePush {
		m |= 1 << moveDoublePushBit
	}
	if flags.CastleK {
		m |= 1 << moveCastleKBit
	}
	if flags.CastleQ {
		m |= 1 << moveCastleQBit
	}
	if flags.Promotion {
		m |= 1 << movePromoBit
	}
	return m
}

func (m Move) From() Square { return Square((m >> moveFromShift) & moveSquareMask) }
func (m Move) To() Square   { return Square((m >> moveToShift) & moveSquareMask) }

// PromotionType returns the promotion piece kind; only meaningful if IsPromotion.
func (m Move) PromotionType() PieceType { return PieceType((m >> movePromoShift) & movePromoMask) }

func (m Move) IsCapture() bool    { return m&(1<<moveCaptureBit) != 0 }
func (m Move) IsEnPassant() bool  { return m&(1<<moveEpBit) != 0 }
func (m Move) IsDoublePush() bool { return m&(1<<moveDoublePushBit) != 0 }
func (m Move) IsCastleK() bool    { return m&(1<<moveCastleKBit) != 0 }
func (m Move) IsCastleQ() bool    { return m&(1<<moveCastleQBit) != 0 }
func (m Move) IsCastle() bool     { return m.IsCastleK() || m.IsCastleQ() }
func (m Move) IsPromotion() bool  { return m&(1<<movePromoBit) != 0 }

// IsValid reports whether m is not the null move.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From() != m.To()
}

// String renders UCI move text: source, destination, optional lowercase
// promotion letter.
func (m Move) String() string {
	if m == MoveNone {
		return "-"
	}
	var b strings.Builder
	b.WriteString(m.From().String())
	b.WriteString(m.To().String())
	if m.IsPromotion() {
		b.WriteByte(m.PromotionType().Char())
	}
	return b.String()
}
