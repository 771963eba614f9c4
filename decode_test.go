// FILE: lixenwraith/dotenv/decode_test.go
package dotenv_test

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/lixenwraith/dotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	type database struct {
		URL     *url.URL      `env:"DATABASE_URL"`
		Timeout time.Duration `env:"DATABASE_TIMEOUT"`
	}
	type appConfig struct {
		Name      string    `env:"APP_NAME"`
		Port      int       `env:"APP_PORT"`
		Ratio     float64   `env:"APP_RATIO"`
		Debug     bool      `env:"APP_DEBUG"`
		Verbose   bool      `env:"APP_VERBOSE"`
		Bind      net.IP    `env:"APP_BIND"`
		Tags      []string  `env:"APP_TAGS"`
		StartedAt time.Time `env:"APP_STARTED"`
		Database  database  `env:",squash"`
		Untagged  string
	}

	content := `
APP_NAME='demo service'
APP_PORT=8080
APP_RATIO=0.75
APP_DEBUG=yes
APP_VERBOSE=true
APP_BIND=10.0.0.1
APP_TAGS=a,b,c
APP_STARTED=2024-01-02T03:04:05Z
DATABASE_URL=postgres://db.local:5432/app
DATABASE_TIMEOUT=5s
UNTAGGED=plain
`

	env := newEnv(true)
	env.Convert("APP_VERBOSE").ToBool()
	_, err := env.Parse(content, "")
	require.NoError(t, err)

	var cfg appConfig
	require.NoError(t, env.Scan(&cfg))

	assert.Equal(t, "demo service", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 0.75, cfg.Ratio)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "10.0.0.1", cfg.Bind.String())
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), cfg.StartedAt.UTC())
	require.NotNil(t, cfg.Database.URL)
	assert.Equal(t, "db.local:5432", cfg.Database.URL.Host)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "plain", cfg.Untagged)
}

func TestScanErrors(t *testing.T) {
	env := newEnv(false)
	_, err := env.Parse("PORT=abc\nIP=999.0.0.1\nFLAG=maybe", "")
	require.NoError(t, err)

	var notPointer struct{}
	assert.Error(t, env.Scan(notPointer))
	assert.Error(t, env.Scan(nil))

	var port struct {
		Port int `env:"PORT"`
	}
	assert.Error(t, env.Scan(&port))

	var ip struct {
		IP net.IP `env:"IP"`
	}
	assert.Error(t, env.Scan(&ip))

	var flag struct {
		Flag bool `env:"FLAG"`
	}
	assert.Error(t, env.Scan(&flag))
}

func TestScanIncludesEnvironment(t *testing.T) {
	env := dotenv.New(dotenv.WithEnviron(func() []string { return []string{"SHELL_VALUE=from-env"} }))
	_, err := env.Parse("FILE_VALUE=from-file", "")
	require.NoError(t, err)

	var cfg struct {
		Shell string `env:"SHELL_VALUE"`
		File  string `env:"FILE_VALUE"`
	}
	require.NoError(t, env.Scan(&cfg))
	assert.Equal(t, "from-env", cfg.Shell)
	assert.Equal(t, "from-file", cfg.File)
}
