package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chess-minimax/engine"
)

const (
	ConfigDepth             = "depth"
	ConfigBackend           = "backend"
	ConfigDebug             = "debug"
	ConfigInheritFromParent = "inherit-from-parent"
	ConfigDisablePruning    = "disable-pruning"
	ConfigWinningThreshold  = "winning-threshold"
	ConfigEarlyQueenPlies   = "early-queen-plies"
	ConfigFile              = "config"
)

const (
	BackendGoose       = "goose"
	BackendDragontooth = "dragontooth"
	BackendNotnil      = "notnil"
)

var Backends = []string{BackendGoose, BackendDragontooth, BackendNotnil}

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	viper.Viper
}

// Load reads flags from args, then MINIMAX_* environment variables, then an
// optional config file named by --config. Flags win over the environment,
// which wins over the file. Tools register their own flags through extra;
// those are bound and read back the same way.
func (c *Config) Load(args []string, extra ...func(*pflag.FlagSet)) error {
	c.Viper = *viper.New()

	fs := pflag.NewFlagSet("minimax", pflag.ContinueOnError)
	fs.Int(ConfigDepth, 5, "search depth in plies")
	fs.String(ConfigBackend, BackendGoose, "rules engine: "+strings.Join(Backends, ", "))
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Bool(ConfigInheritFromParent, false, "children start from their parent's value instead of their grandparent's")
	fs.Bool(ConfigDisablePruning, false, "search the full tree without alpha-beta cutoffs")
	fs.Int(ConfigWinningThreshold, engine.DefaultWinningThreshold, "score above which a draw counts as a lost win")
	fs.Int(ConfigEarlyQueenPlies, engine.DefaultEarlyQueenPlies, "plies during which queen moves are penalised")
	fs.String(ConfigFile, "", "optional config file (yaml, json or toml)")
	for _, register := range extra {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("MINIMAX")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if file := c.GetString(ConfigFile); file != "" {
		c.SetConfigFile(file)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if d := c.GetInt(ConfigDepth); d <= 0 {
		return fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidConfig, d)
	}
	if b := c.GetString(ConfigBackend); !lo.Contains(Backends, b) {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, b)
	}
	return nil
}

// LogLevel is the global zerolog level the binaries should run at.
func (c *Config) LogLevel() zerolog.Level {
	if c.GetBool(ConfigDebug) {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// EngineOptions maps the loaded settings onto engine.Options.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.InheritFromParent = c.GetBool(ConfigInheritFromParent)
	opts.DisablePruning = c.GetBool(ConfigDisablePruning)
	opts.WinningThreshold = c.GetInt(ConfigWinningThreshold)
	opts.EarlyQueenPlies = c.GetInt(ConfigEarlyQueenPlies)
	return opts
}
