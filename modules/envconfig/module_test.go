package envconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
)

func TestConfigure(t *testing.T) {
	t.Run("vars only", func(t *testing.T) {
		assert.NoError(t, (&Source{}).Configure(module.Config{"vars": []any{"API_KEY"}}))
	})

	t.Run("prefix only", func(t *testing.T) {
		assert.NoError(t, (&Source{}).Configure(module.Config{"prefix": "TG_"}))
	})

	t.Run("neither vars nor prefix", func(t *testing.T) {
		err := (&Source{}).Configure(module.Config{})
		assert.ErrorContains(t, err, "either 'vars' or 'prefix' must be configured")
	})
}

func TestExecute(t *testing.T) {
	execute := func(t *testing.T, s *Source) payload.Values {
		t.Helper()
		out, err := s.Execute(context.Background(), module.NewInput(nil))
		require.NoError(t, err)
		values, ok := out.(payload.Values)
		require.True(t, ok)
		return values
	}

	t.Run("allow-listed vars", func(t *testing.T) {
		t.Setenv("TRADEGRID_TEST_KEY", "hunter2")
		t.Setenv("TRADEGRID_TEST_OTHER", "nope")

		s := &Source{}
		require.NoError(t, s.Configure(module.Config{"vars": []any{"TRADEGRID_TEST_KEY"}}))

		values := execute(t, s)
		assert.Equal(t, payload.Values{"TRADEGRID_TEST_KEY": "hunter2"}, values)
	})

	t.Run("unset vars are absent", func(t *testing.T) {
		s := &Source{}
		require.NoError(t, s.Configure(module.Config{"vars": []any{"TRADEGRID_TEST_UNSET"}}))

		values := execute(t, s)
		assert.Empty(t, values)
	})

	t.Run("prefix is stripped from exported names", func(t *testing.T) {
		t.Setenv("TGTEST_API_KEY", "k")
		t.Setenv("TGTEST_API_SECRET", "s")
		t.Setenv("UNRELATED", "x")

		s := &Source{}
		require.NoError(t, s.Configure(module.Config{"prefix": "TGTEST_"}))

		values := execute(t, s)
		assert.Equal(t, "k", values["API_KEY"])
		assert.Equal(t, "s", values["API_SECRET"])
		assert.NotContains(t, values, "UNRELATED")
	})

	t.Run("execute re-reads the environment each cycle", func(t *testing.T) {
		t.Setenv("TRADEGRID_TEST_ROTATING", "v1")

		s := &Source{}
		require.NoError(t, s.Configure(module.Config{"vars": []any{"TRADEGRID_TEST_ROTATING"}}))
		assert.Equal(t, "v1", execute(t, s)["TRADEGRID_TEST_ROTATING"])

		t.Setenv("TRADEGRID_TEST_ROTATING", "v2")
		assert.Equal(t, "v2", execute(t, s)["TRADEGRID_TEST_ROTATING"])
	})
}
