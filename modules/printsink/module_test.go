package printsink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tradegrid/internal/module"
)

func TestSink(t *testing.T) {
	t.Run("configure accepts an empty block", func(t *testing.T) {
		assert.NoError(t, (&Sink{}).Configure(module.Config{}))
	})

	t.Run("execute produces no payload", func(t *testing.T) {
		s := &Sink{}
		require.NoError(t, s.Configure(module.Config{"prefix": "[demo] "}))

		out, err := s.Execute(context.Background(), module.NewInput(map[string]any{
			"signals": map[string]any{"direction": "entry_long"},
			"raw":     make(chan int), // not serializable, printed raw
		}))
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("empty input is fine", func(t *testing.T) {
		s := &Sink{}
		require.NoError(t, s.Configure(module.Config{}))

		out, err := s.Execute(context.Background(), module.NewInput(nil))
		require.NoError(t, err)
		assert.Nil(t, out)
	})
}
