package chesscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/chesscore/internal/position"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	p1 := position.NewStandard()
	Init()
	p2 := position.NewStandard()
	assert.Equal(t, p1.Key(), p2.Key())
}

func TestInitEnablesPositionCreation(t *testing.T) {
	Init()
	p, err := position.FromFen(position.StartFen)
	require.NoError(t, err)
	assert.Equal(t, position.StartFen, p.ToFen())
}
