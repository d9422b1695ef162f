// Package config loads server and tool configuration with viper. Values come
// from defaults, then the config file, then THRUSTCRAFT_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/thrustcraft-mp/shared/control"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// THRUSTCRAFT_SERVER_PORT.
const EnvPrefix = "THRUSTCRAFT"

type ServerConfig struct {
	Port      uint   `mapstructure:"port"`
	TickRate  int    `mapstructure:"tickRate"`
	Substeps  int    `mapstructure:"substeps"`
	Name      string `mapstructure:"name"`
	Version   string `mapstructure:"version"` // required client version, empty accepts any
	MaxPilots int    `mapstructure:"maxPilots"`
}

type ControlConfig struct {
	Deadzone   float32        `mapstructure:"deadzone"`
	Increments gamemath.Axes6 `mapstructure:"increments"`
}

type PhysicsConfig struct {
	LinearDamping   float32 `mapstructure:"linearDamping"`
	AngularDamping  float32 `mapstructure:"angularDamping"`
	MaxLinearSpeed  float32 `mapstructure:"maxLinearSpeed"`
	MaxAngularSpeed float32 `mapstructure:"maxAngularSpeed"`
}

type SectorConfig struct {
	AssetsDir string `mapstructure:"assetsDir"` // empty reads the built-in sectors
	Dir       string `mapstructure:"dir"`
	Name      string `mapstructure:"name"`
}

type BlueprintConfig struct {
	Dir string `mapstructure:"dir"` // empty uses the built-in catalog
}

type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type ObserverConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type Config struct {
	Server     ServerConfig    `mapstructure:"server"`
	Control    ControlConfig   `mapstructure:"control"`
	Physics    PhysicsConfig   `mapstructure:"physics"`
	Sector     SectorConfig    `mapstructure:"sector"`
	Blueprints BlueprintConfig `mapstructure:"blueprints"`
	Replay     ReplayConfig    `mapstructure:"replay"`
	Observer   ObserverConfig  `mapstructure:"observer"`
	Log        LogConfig       `mapstructure:"log"`
}

func setDefaults() {
	sim := shipsim.DefaultConfig()

	viper.SetDefault("server.port", 7373)
	viper.SetDefault("server.tickRate", sim.TickRate)
	viper.SetDefault("server.substeps", sim.Substeps)
	viper.SetDefault("server.name", "Thrustcraft Server")
	viper.SetDefault("server.version", "")
	viper.SetDefault("server.maxPilots", 16)

	viper.SetDefault("control.deadzone", control.DefaultDeadzone)
	inc := control.DefaultIncrements()
	viper.SetDefault("control.increments.forward", inc.Forward)
	viper.SetDefault("control.increments.right", inc.Right)
	viper.SetDefault("control.increments.upward", inc.Upward)
	viper.SetDefault("control.increments.turnRight", inc.TurnRight)
	viper.SetDefault("control.increments.tiltUp", inc.TiltUp)
	viper.SetDefault("control.increments.rollRight", inc.RollRight)

	viper.SetDefault("physics.linearDamping", sim.Physics.LinearDamping)
	viper.SetDefault("physics.angularDamping", sim.Physics.AngularDamping)
	viper.SetDefault("physics.maxLinearSpeed", sim.Physics.MaxLinearSpeed)
	viper.SetDefault("physics.maxAngularSpeed", sim.Physics.MaxAngularSpeed)

	viper.SetDefault("sector.assetsDir", "")
	viper.SetDefault("sector.dir", "sectors")
	viper.SetDefault("sector.name", "drift")

	viper.SetDefault("blueprints.dir", "")

	viper.SetDefault("replay.enabled", false)
	viper.SetDefault("replay.dir", "./replays")

	viper.SetDefault("observer.enabled", false)
	viper.SetDefault("observer.addr", ":7374")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
}

// Load reads configuration. With an empty path it looks for thrustcraft.yaml
// (or .json) in the working directory and carries on with defaults when none
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.SetConfigName("thrustcraft")
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.TickRate <= 0:
		return fmt.Errorf("server.tickRate must be positive, got %d", c.Server.TickRate)
	case c.Server.Substeps < 1:
		return fmt.Errorf("server.substeps must be at least 1, got %d", c.Server.Substeps)
	case c.Server.MaxPilots < 1:
		return fmt.Errorf("server.maxPilots must be at least 1, got %d", c.Server.MaxPilots)
	case c.Control.Deadzone < 0 || c.Control.Deadzone >= 1:
		return fmt.Errorf("control.deadzone must be in [0, 1), got %v", c.Control.Deadzone)
	}
	return nil
}

// Sim is the simulation configuration shared with replays.
func (c *Config) Sim() shipsim.Config {
	return shipsim.Config{
		TickRate:   c.Server.TickRate,
		Substeps:   c.Server.Substeps,
		Deadzone:   c.Control.Deadzone,
		Increments: c.Control.Increments,
		Physics: shipsim.EulerIntegrator{
			LinearDamping:   c.Physics.LinearDamping,
			AngularDamping:  c.Physics.AngularDamping,
			MaxLinearSpeed:  c.Physics.MaxLinearSpeed,
			MaxAngularSpeed: c.Physics.MaxAngularSpeed,
		},
	}
}
