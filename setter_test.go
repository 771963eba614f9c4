// FILE: lixenwraith/dotenv/setter_test.go
package dotenv_test

import (
	"errors"
	"testing"

	"github.com/lixenwraith/dotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetter(t *testing.T) {
	t.Run("FanOutToEveryKey", func(t *testing.T) {
		env := newEnv(true)
		env.Rule("A", "B").IsInt()

		kinds := env.RuleKinds()
		assert.Equal(t, []dotenv.RuleKind{dotenv.RuleInt}, kinds["A"])
		assert.Equal(t, []dotenv.RuleKind{dotenv.RuleInt}, kinds["B"])

		_, err := env.Parse("A=1\nB=x", "")
		assert.True(t, errors.Is(err, dotenv.ErrRuleFailed))
	})

	t.Run("IndependentPerKey", func(t *testing.T) {
		env := newEnv(true)
		env.Rule("A", "B").IsInt()
		env.Rule("B").IsInt(false)

		got, err := env.Parse("A=1\nB=x", "")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"A": "1", "B": "x"}, got)
	})

	t.Run("InvalidKeyRecorded", func(t *testing.T) {
		env := newEnv(false)
		rs := env.Rule("GOOD", "bad-key")
		assert.Len(t, rs, 1)

		err := env.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, dotenv.ErrInvalidKey))

		_, err = env.Parse("GOOD=1", "")
		assert.True(t, errors.Is(err, dotenv.ErrRuntime))
	})

	t.Run("InvalidRegexRecorded", func(t *testing.T) {
		env := newEnv(false)
		env.Rule("K").IsRegex("([")

		assert.Error(t, env.Err())
		_, err := env.Parse("K=v", "")
		assert.True(t, errors.Is(err, dotenv.ErrRuntime))

		env.Rule("K").Clear()
		assert.NoError(t, env.Err())
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		env := newEnv(true)
		env.Rule("A").IsRequired()
		env.Rule("B").IsRequired()

		env.RemoveRule("A")
		assert.NotContains(t, env.RuleKinds(), "A")

		_, err := env.Parse("B=1", "")
		require.NoError(t, err)

		env.ClearRules()
		assert.Empty(t, env.RuleKinds())
	})
}

func TestConverterSetter(t *testing.T) {
	env := newEnv(true)
	env.Convert("A", "B").ToInt()
	env.Convert("B").ToFloat()

	assert.Equal(t, map[string]dotenv.ConverterKind{
		"A": dotenv.ConvertToInt,
		"B": dotenv.ConvertToFloat,
	}, env.ConverterKinds())

	got, err := env.Parse("A=2\nB=2", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got["A"])
	assert.Equal(t, 2.0, got["B"])

	env.RemoveConverter("A")
	got, err = env.Parse("A=2", "")
	require.NoError(t, err)
	assert.Equal(t, "2", got["A"])

	env.ClearConverters()
	assert.Empty(t, env.ConverterKinds())

	env.Convert("!")
	assert.True(t, errors.Is(env.Err(), dotenv.ErrInvalidKey))
}
