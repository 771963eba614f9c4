// FILE: lixenwraith/dotenv/builder_test.go
package dotenv_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/lixenwraith/dotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "app.env", "PORT=8080\nDEBUG=yes\nHOST=localhost")

	t.Run("FilesAndScheme", func(t *testing.T) {
		mirror := dotenv.NewMapAdaptor()
		env, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithStrict(true).
			WithAdaptor("mirror", mirror).
			WithScheme(map[string]dotenv.KeyScheme{
				"PORT":  {Convert: "toInt", Rules: []string{"isRequired"}},
				"DEBUG": {Convert: "toBool"},
			}).
			WithFiles(file).
			WithContent("EXTRA='a b'").
			Build()
		require.NoError(t, err)

		assert.Equal(t, dotenv.ModeStrict, env.Mode())
		assert.Equal(t, map[string]any{
			"PORT":  int64(8080),
			"DEBUG": true,
			"HOST":  "localhost",
			"EXTRA": "a b",
		}, mirror.Values())
	})

	t.Run("SchemeMergesPerKey", func(t *testing.T) {
		env, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithScheme(map[string]dotenv.KeyScheme{"PORT": {Convert: "toInt"}}).
			WithScheme(map[string]dotenv.KeyScheme{"PORT": {Convert: "toFloat"}, "HOST": {Rules: []string{"isString"}}}).
			WithFiles(file).
			Build()
		require.NoError(t, err)

		assert.Equal(t, dotenv.ConvertToFloat, env.ConverterKinds()["PORT"])
		v, err := env.Get("PORT")
		require.NoError(t, err)
		assert.Equal(t, 8080.0, v)
	})

	t.Run("BuiltinAdaptors", func(t *testing.T) {
		env, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithBuiltinAdaptors("map", "constant").
			Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"map", "constant"}, env.Adaptors())
	})

	t.Run("AdaptorPolicy", func(t *testing.T) {
		failing := dotenv.AdaptorFunc(func(string, any) error { return errors.New("down") })
		_, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithAdaptor("failing", failing).
			WithAdaptorPolicy(dotenv.AdaptorPolicyFail).
			WithContent("A=1").
			Build()
		assert.True(t, errors.Is(err, dotenv.ErrAdaptor))
	})

	t.Run("Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		_, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithLogger(logger).
			WithContent("GOOD=1\nBAD LINE=2").
			Build()
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "line skipped")
		assert.Contains(t, buf.String(), "value accepted")
	})
}

func TestBuilderSettingFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "app.env", "PORT=8080\nNAME=demo")
	setting := writeFile(t, dir, "setting.toml", fmt.Sprintf(`
strict = false
load = [%q]

[scheme.PORT]
convert = "toInt"
`, file))

	t.Run("FromFile", func(t *testing.T) {
		env, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithSettingFile(setting).
			Build()
		require.NoError(t, err)
		assert.Equal(t, dotenv.ModePermissive, env.Mode())
		assert.Equal(t, map[string]any{"PORT": int64(8080), "NAME": "demo"}, env.Loaded())
	})

	t.Run("BuilderOverrides", func(t *testing.T) {
		env, err := dotenv.NewBuilder().
			WithEnviron(emptyEnviron).
			WithSettingFile(setting).
			WithStrict(true).
			WithScheme(map[string]dotenv.KeyScheme{"PORT": {Convert: "toString"}}).
			WithContent("LATE=1").
			Build()
		require.NoError(t, err)
		assert.Equal(t, dotenv.ModeStrict, env.Mode())
		assert.Equal(t, map[string]any{"PORT": "8080", "NAME": "demo", "LATE": "1"}, env.Loaded())
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := dotenv.NewBuilder().WithSettingFile(dir + "/missing.toml").Build()
		assert.Error(t, err)
	})
}

func TestBuilderValidators(t *testing.T) {
	var order []int
	env, err := dotenv.NewBuilder().
		WithEnviron(emptyEnviron).
		WithContent("PORT=8080").
		WithValidator(func(d *dotenv.DotEnv) error { order = append(order, 1); return nil }).
		WithValidator(nil).
		WithValidator(func(d *dotenv.DotEnv) error { order = append(order, 2); return nil }).
		Build()
	require.NoError(t, err)
	assert.NotNil(t, env)
	assert.Equal(t, []int{1, 2}, order)

	_, err = dotenv.NewBuilder().
		WithEnviron(emptyEnviron).
		WithContent("PORT=80").
		WithValidator(func(d *dotenv.DotEnv) error {
			port, err := d.Int("PORT")
			if err != nil {
				return err
			}
			if port < 1024 {
				return fmt.Errorf("port %d is privileged", port)
			}
			return nil
		}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "port 80 is privileged")
}

func TestBuilderMustBuild(t *testing.T) {
	assert.NotPanics(t, func() {
		dotenv.NewBuilder().WithEnviron(emptyEnviron).WithContent("A=1").MustBuild()
	})
	assert.PanicsWithValue(t,
		"dotenv build failed: runtime error: unknown adaptor \"redis\"",
		func() { dotenv.NewBuilder().WithBuiltinAdaptors("redis").MustBuild() },
	)
}

func TestBuilderBuildAndScan(t *testing.T) {
	type target struct {
		Port  int    `env:"PORT"`
		Debug bool   `env:"DEBUG"`
		Host  string `env:"HOST"`
	}

	var cfg target
	err := dotenv.NewBuilder().
		WithEnviron(emptyEnviron).
		WithContent("PORT=8080\nDEBUG=on\nHOST=localhost").
		BuildAndScan(&cfg)
	require.NoError(t, err)
	assert.Equal(t, target{Port: 8080, Debug: true, Host: "localhost"}, cfg)

	err = dotenv.NewBuilder().WithEnviron(emptyEnviron).BuildAndScan(cfg)
	assert.Error(t, err)
}
