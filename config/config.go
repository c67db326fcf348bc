package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/milk9111/coinwalk/prefabs"
)

// Config is the host configuration after .env and flags are applied.
type Config struct {
	Debug     bool
	Width     float64
	Height    float64
	Coins     int
	Seed      int64
	Script    string
	PrefabDir string
	AssetRoot string
}

// Load reads envFile (if present) into the environment, then parses args
// with a flag set called name. Flags override environment values, which
// override the prefab defaults.
func Load(envFile, name string, args []string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	var cfg Config
	fl := flag.NewFlagSet(name, flag.ContinueOnError)
	fl.BoolVar(&cfg.Debug, "debug", envBool("COINWALK_DEBUG"), "enable debug overlay and prefab hot reload")
	fl.Float64Var(&cfg.Width, "width", envFloat("COINWALK_CANVAS_WIDTH"), "canvas width in pixels (0 = prefab)")
	fl.Float64Var(&cfg.Height, "height", envFloat("COINWALK_CANVAS_HEIGHT"), "canvas height in pixels (0 = prefab)")
	fl.IntVar(&cfg.Coins, "coins", int(envInt("COINWALK_COINS")), "number of coins (0 = prefab)")
	fl.Int64Var(&cfg.Seed, "seed", envInt("COINWALK_SEED"), "coin layout seed (0 = prefab, then random)")
	fl.StringVar(&cfg.Script, "script", os.Getenv("COINWALK_SPAWN_SCRIPT"), "tengo spawn script in prefabs/scripts")
	fl.StringVar(&cfg.PrefabDir, "prefabs", envString("COINWALK_PREFABS", prefabs.Dir), "on-disk prefab directory")
	fl.StringVar(&cfg.AssetRoot, "assets", envString("COINWALK_ASSETS", "."), "directory sprite paths are relative to")
	if err := fl.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply merges the host overrides into the world prefab. A zero seed is
// replaced with a time-based one.
func (c Config) Apply(spec prefabs.WorldSpec) prefabs.WorldSpec {
	if c.Width > 0 {
		spec.Canvas.Width = c.Width
	}
	if c.Height > 0 {
		spec.Canvas.Height = c.Height
	}
	if c.Coins > 0 {
		spec.Coins = c.Coins
	}
	if c.Seed != 0 {
		spec.Seed = c.Seed
	}
	if c.Script != "" {
		spec.SpawnScript = c.Script
	}
	if spec.Seed == 0 {
		spec.Seed = time.Now().UnixNano()
	}
	return spec
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func envInt(key string) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
