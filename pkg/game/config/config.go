// Package config loads the engine's tunables from CAVEDELVE_* environment variables.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/save"
	"cavedelve/pkg/game/stairs"
)

// Config holds every engine tunable.
type Config struct {
	DataDir     string `env:"CAVEDELVE_DATA_DIR"`
	CatalogPath string `env:"CAVEDELVE_CATALOG"`
	LocaleDir   string `env:"CAVEDELVE_LOCALE_DIR" envDefault:"locales"`
	Locale      string `env:"CAVEDELVE_LOCALE" envDefault:"en_GB"`

	// Seed pins the base seed of new runs; zero picks one from the clock.
	Seed int64 `env:"CAVEDELVE_SEED"`

	Width       int `env:"CAVEDELVE_WIDTH" envDefault:"64"`
	Height      int `env:"CAVEDELVE_HEIGHT" envDefault:"64"`
	FillPercent int `env:"CAVEDELVE_FILL_PERCENT" envDefault:"55"`

	ChestCount    int       `env:"CAVEDELVE_CHEST_COUNT" envDefault:"3"`
	EnemyCount    int       `env:"CAVEDELVE_ENEMY_COUNT" envDefault:"10"`
	RarityWeights []float64 `env:"CAVEDELVE_RARITY_WEIGHTS" envSeparator:"," envDefault:"60,25,10,4,1"`

	EntranceStairs int `env:"CAVEDELVE_ENTRANCE_STAIRS" envDefault:"2"`
	MidStairs      int `env:"CAVEDELVE_MID_STAIRS" envDefault:"2"`
	EscapeStairs   int `env:"CAVEDELVE_ESCAPE_STAIRS" envDefault:"1"`
	SpawnOffsetX   int `env:"CAVEDELVE_SPAWN_OFFSET_X" envDefault:"1"`
	SpawnOffsetY   int `env:"CAVEDELVE_SPAWN_OFFSET_Y" envDefault:"0"`

	MaxFloor   int `env:"CAVEDELVE_MAX_FLOOR" envDefault:"3"`
	PoolSize   int `env:"CAVEDELVE_POOL_SIZE" envDefault:"20"`
	MaxLoadout int `env:"CAVEDELVE_MAX_LOADOUT" envDefault:"3"`
	DeathLimit int `env:"CAVEDELVE_DEATH_LIMIT" envDefault:"3"`

	StairHold    time.Duration `env:"CAVEDELVE_STAIR_HOLD" envDefault:"2s"`
	TreasureHold time.Duration `env:"CAVEDELVE_TREASURE_HOLD" envDefault:"1s"`
	EscapeLock   time.Duration `env:"CAVEDELVE_ESCAPE_LOCK" envDefault:"5s"`

	StartingOwnedIDs      []string `env:"CAVEDELVE_STARTING_OWNED" envSeparator:","`
	StartingUnlockOnlyIDs []string `env:"CAVEDELVE_STARTING_UNLOCK_ONLY" envSeparator:","`
}

// Load reads the configuration from the process environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := save.DefaultDir()
		if err != nil {
			return Config{}, fmt.Errorf("data dir: %w", err)
		}
		cfg.DataDir = dir
	}
	cfg.Validate()
	return cfg, nil
}

// Default returns the built-in defaults, ignoring the environment.
// DataDir is left empty.
func Default() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	cfg.Validate()
	return cfg
}

// Validate clamps out-of-range values to safe ones, logging each change.
func (c *Config) Validate() {
	clampInt("width", &c.Width, 8, 512)
	clampInt("height", &c.Height, 8, 512)
	clampInt("fill percent", &c.FillPercent, 0, 100)
	clampInt("chest count", &c.ChestCount, 0, 100)
	clampInt("enemy count", &c.EnemyCount, 0, 500)
	clampInt("entrance stairs", &c.EntranceStairs, stairs.MinCount, stairs.MaxCount)
	clampInt("mid stairs", &c.MidStairs, stairs.MinCount, stairs.MaxCount)
	clampInt("escape stairs", &c.EscapeStairs, stairs.MinCount, stairs.MaxCount)
	clampInt("max floor", &c.MaxFloor, floors.FirstFloor, floors.TotalFloors)
	clampInt("pool size", &c.PoolSize, 0, 1000)
	clampInt("max loadout", &c.MaxLoadout, 0, 50)
	clampInt("death limit", &c.DeathLimit, 1, 100)
	if c.StairHold < 0 {
		c.StairHold = stairs.DefaultStairHold
	}
	if c.TreasureHold < 0 {
		c.TreasureHold = stairs.DefaultTreasureHold
	}
	if c.EscapeLock < 0 {
		c.EscapeLock = 0
	}
	if len(c.RarityWeights) > len(loot.AllRarities()) {
		log.Printf("config: ignoring %d extra rarity weights", len(c.RarityWeights)-len(loot.AllRarities()))
		c.RarityWeights = c.RarityWeights[:len(loot.AllRarities())]
	}
}

func clampInt(name string, v *int, lo, hi int) {
	switch {
	case *v < lo:
		log.Printf("config: %s %d below %d, clamped", name, *v, lo)
		*v = lo
	case *v > hi:
		log.Printf("config: %s %d above %d, clamped", name, *v, hi)
		*v = hi
	}
}

// Weights returns the chest rarity table, pairing weights with tiers from Common up.
func (c Config) Weights() []loot.Weight {
	tiers := loot.AllRarities()
	out := make([]loot.Weight, 0, len(c.RarityWeights))
	for i, w := range c.RarityWeights {
		if i >= len(tiers) {
			break
		}
		out = append(out, loot.Weight{Rarity: tiers[i], Weight: w})
	}
	return out
}

// StairCounts returns the per-kind stair counts.
func (c Config) StairCounts() stairs.Counts {
	return stairs.Counts{Entrance: c.EntranceStairs, Mid: c.MidStairs, Escape: c.EscapeStairs}
}

// SpawnOffset returns the player placement offset from the spawn stair.
func (c Config) SpawnOffset() world.Point {
	return world.Point{X: c.SpawnOffsetX, Y: c.SpawnOffsetY}
}
