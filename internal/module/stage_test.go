package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageRank(t *testing.T) {
	assert.Equal(t, 0, StageDataCollection.Rank())
	assert.Equal(t, 7, StageAlerts.Rank())
	assert.Less(t, StageSignalGeneration.Rank(), StageExecution.Rank())

	// Auxiliary stages rank after every canonical one.
	assert.Equal(t, len(canonicalRank), StageAI.Rank())
	assert.Equal(t, len(canonicalRank), Stage("replay").Rank())
}

func TestStageAuxiliary(t *testing.T) {
	assert.False(t, StageDataCollection.Auxiliary())
	assert.False(t, StageAlerts.Auxiliary())
	assert.True(t, StageAI.Auxiliary())
	assert.True(t, Stage("replay").Auxiliary())
}

func TestLess(t *testing.T) {
	t.Run("canonical rank dominates", func(t *testing.T) {
		assert.True(t, Less(StageDataCollection, "z", StageExecution, "a"))
		assert.False(t, Less(StageExecution, "a", StageDataCollection, "z"))
	})

	t.Run("auxiliary stages order by name", func(t *testing.T) {
		assert.True(t, Less(StageAI, "x", Stage("replay"), "x"))
		assert.False(t, Less(Stage("replay"), "x", StageAI, "x"))
	})

	t.Run("id breaks ties within a stage", func(t *testing.T) {
		assert.True(t, Less(StageDataCollection, "alpha", StageDataCollection, "beta"))
		assert.False(t, Less(StageDataCollection, "beta", StageDataCollection, "alpha"))
		assert.False(t, Less(StageDataCollection, "alpha", StageDataCollection, "alpha"))
	})
}
