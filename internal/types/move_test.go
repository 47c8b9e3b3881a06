package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovePack(t *testing.T) {
	m := NewMove(SqE2, SqE4, PtNone, MoveFlags{DoublePush: true})
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.True(t, m.IsDoublePush())
	assert.False(t, m.IsCapture())
	assert.Equal(t, "e2e4", m.String())
}

func TestMovePromotion(t *testing.T) {
	m := NewMove(SqA7, SqA8, Queen, MoveFlags{Promotion: true})
	assert.True(t, m.IsPromotion())
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, "a7a8q", m.String())
}

func TestMoveEnPassant(t *testing.T) {
	m := NewMove(SqE5, SqD6, PtNone, MoveFlags{Capture: true, EnPassant: true})
	assert.True(t, m.IsCapture())
	assert.True(t, m.IsEnPassant())
}

func TestMoveNone(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	assert.Equal(t, "-", MoveNone.String())
}
