// FILE: lixenwraith/dotenv/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/dotenv"
)

const envFile = `
# service
APP_NAME='demo service'   # quoted values keep spaces
APP_PORT=8080
APP_DEBUG=yes
APP_RATIO=0.75
APP_ADMIN=admin@example.com
APP_MOTD="first line
second line"
`

type AppConfig struct {
	Name  string  `env:"APP_NAME"`
	Port  int     `env:"APP_PORT"`
	Debug bool    `env:"APP_DEBUG"`
	Ratio float64 `env:"APP_RATIO"`
	Admin string  `env:"APP_ADMIN"`
	MOTD  string  `env:"APP_MOTD"`
}

func main() {
	dir, err := os.MkdirTemp("", "dotenv-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(envFile), 0644); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	constants := dotenv.NewConstantAdaptor()

	env := dotenv.New(
		dotenv.WithStrict(true),
		dotenv.WithLogger(logger),
		dotenv.WithAdaptor("constant", constants),
	)
	env.Convert("APP_PORT").ToInt()
	env.Convert("APP_DEBUG").ToBool()
	env.Convert("APP_RATIO").ToFloat()
	env.Rule("APP_NAME", "APP_PORT").IsRequired()
	env.Rule("APP_PORT").IsRangeValue(dotenv.Float(1), dotenv.Float(65535))
	env.Rule("APP_RATIO").IsRangeValue(dotenv.Float(0), dotenv.Float(1))
	env.Rule("APP_ADMIN").IsEmail()

	values, err := env.Load(path)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	fmt.Printf("loaded %d keys, APP_PORT=%v (%T)\n", len(values), values["APP_PORT"], values["APP_PORT"])

	var cfg AppConfig
	if err := env.Scan(&cfg); err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("scanned: %+v\n", cfg)

	if v, ok := constants.Lookup("APP_NAME"); ok {
		fmt.Printf("constant APP_NAME=%v\n", v)
	}

	// A failing rule names the key and the rule
	_, err = env.Parse("APP_PORT=70000", "override")
	var lerr *dotenv.LoaderError
	if errors.As(err, &lerr) {
		fmt.Printf("rejected %s by %s: %v\n", lerr.Key, lerr.Rule, err)
	}

	fmt.Println("--- toml dump ---")
	var sb strings.Builder
	if err := env.Dump(&sb); err != nil {
		log.Fatalf("dump: %v", err)
	}
	fmt.Print(sb.String())
}
