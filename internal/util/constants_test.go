package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPRequirement(t *testing.T) {
	assert.Equal(t, 100, XPRequirement(1))
	assert.Equal(t, 200, XPRequirement(2))
	assert.Equal(t, 400, XPRequirement(3))
	assert.Equal(t, 800, XPRequirement(4))
	assert.Equal(t, 1600, XPRequirement(5))
	// Past the table: display-only requirement.
	assert.Equal(t, 3000, XPRequirement(6))
	assert.Equal(t, 3000, XPRequirement(42))
}

func TestRankForLevel(t *testing.T) {
	assert.Equal(t, "Iniciado", RankForLevel(0))
	assert.Equal(t, "Iniciado", RankForLevel(1))
	assert.Equal(t, "Padawan", RankForLevel(2))
	assert.Equal(t, "Maestro", RankForLevel(3))
	assert.Equal(t, "Maestro", RankForLevel(4))
	assert.Equal(t, "Parra", RankForLevel(5))
	assert.Equal(t, "Parra", RankForLevel(9))
}
