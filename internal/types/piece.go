package types

// Piece is the pair (color, kind) occupying a square, or PieceNone.
type Piece int8

const (
	PieceNone Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	PieceLength
)

// MakePiece packs a color and kind into a Piece.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PtNone {
		return PieceNone
	}
	if c == White {
		return Piece(pt)
	}
	return Piece(pt) + (BlackPawn - Piece(Pawn))
}

// ColorOf returns the piece's color. Undefined for PieceNone.
func (p Piece) ColorOf() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// TypeOf returns the piece's kind, PtNone for PieceNone.
func (p Piece) TypeOf() PieceType {
	switch {
	case p == PieceNone:
		return PtNone
	case p >= BlackPawn:
		return PieceType(p - (BlackPawn - Piece(Pawn)))
	default:
		return PieceType(p)
	}
}

// ValueOf returns the piece's signed material value (negative for Black).
func (p Piece) ValueOf() int {
	v := p.TypeOf().ValueOf()
	if p.ColorOf() == Black {
		return -v
	}
	return v
}

// IsValid reports whether p is a real piece (not PieceNone).
func (p Piece) IsValid() bool {
	return p != PieceNone && p.TypeOf() != PtNone
}

func (p Piece) String() string {
	if p == PieceNone {
		return "-"
	}
	s := p.TypeOf().String()
	if p.ColorOf() == White {
		return string(s[0] - 32)
	}
	return s
}
