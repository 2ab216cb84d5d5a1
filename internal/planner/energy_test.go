package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnergy(t *testing.T) {
	assert.Equal(t, "low", resolveEnergy(0))
	assert.Equal(t, "low", resolveEnergy(1))
	assert.Equal(t, "medium", resolveEnergy(2))
	assert.Equal(t, "high", resolveEnergy(3))
}
