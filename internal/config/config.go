package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/cardset"
	"github.com/arcanaland/loteria/internal/compose"
)

// EnvPrefix prefixes every environment override, e.g. LOTERIA_SEED.
const EnvPrefix = "LOTERIA_"

// Config represents the application configuration. Zero card counts mean
// "ask when generating".
type Config struct {
	PicDir        string       `toml:"pic_dir" env:"PIC_DIR"`
	CallingCards  int          `toml:"calling_cards" env:"CALLING_CARDS"`
	GameCards     int          `toml:"game_cards" env:"GAME_CARDS"`
	Columns       int          `toml:"columns" env:"COLUMNS"`
	Rows          int          `toml:"rows" env:"ROWS"`
	Seed          int64        `toml:"seed" env:"SEED"`
	Workers       int          `toml:"workers" env:"WORKERS"`
	Overlay       bool         `toml:"overlay" env:"OVERLAY"`
	Interpolation string       `toml:"interpolation" env:"INTERPOLATION"`
	Insert        InsertConfig `toml:"insert" envPrefix:"INSERT_"`
	Sheet         SheetConfig  `toml:"sheet" envPrefix:"SHEET_"`
}

// InsertConfig places the tiled calling cards inside a game card template.
type InsertConfig struct {
	Width   int `toml:"width" env:"WIDTH"`
	OffsetX int `toml:"offset_x" env:"OFFSET_X"`
	OffsetY int `toml:"offset_y" env:"OFFSET_Y"`
}

// SheetConfig is the blank page of a calling card sheet.
type SheetConfig struct {
	Width  int `toml:"width" env:"WIDTH"`
	Height int `toml:"height" env:"HEIGHT"`
	Margin int `toml:"margin" env:"MARGIN"`
}

// Default returns the configuration written on first use.
func Default() *Config {
	insert := compose.DefaultInsertLayout()
	sheet := compose.DefaultSheetLayout()
	return &Config{
		PicDir:        "pics",
		Overlay:       true,
		Interpolation: "lanczos3",
		Insert:        InsertConfig{Width: insert.Width, OffsetX: insert.OffsetX, OffsetY: insert.OffsetY},
		Sheet:         SheetConfig{Width: sheet.Width, Height: sheet.Height, Margin: sheet.Margin},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "loteria", "config.toml")
}

// LoadConfig loads the default config file, creating it when missing, and
// applies environment overrides.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigFilePath())
}

// LoadConfigFrom loads the config file at path, creating it with defaults
// when missing, and applies environment overrides.
func LoadConfigFrom(configPath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := Save(configPath, config); err != nil {
			return nil, err
		}
	} else if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, apperr.Input("config.Load", "error decoding config file %s: %v", configPath, err)
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, apperr.Input("config.Load", "error parsing environment: %v", err)
	}
	return config, nil
}

// Save writes config as TOML to configPath, creating its directory.
func Save(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return apperr.IO("config.Save", fmt.Errorf("error creating config directory: %w", err))
	}

	file, err := os.Create(configPath)
	if err != nil {
		return apperr.IO("config.Save", fmt.Errorf("error creating config file: %w", err))
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return apperr.IO("config.Save", fmt.Errorf("error encoding config: %w", err))
	}
	return nil
}

// CallingCardsDir returns the directory holding the calling card images.
func (c *Config) CallingCardsDir() string {
	return filepath.Join(c.PicDir, "input", "calling_cards")
}

// TemplatesDir returns the directory holding the game card templates.
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.PicDir, "input", "game_card_templates")
}

// OutputDir returns the root of the generated files.
func (c *Config) OutputDir() string {
	return filepath.Join(c.PicDir, "output")
}

// Params returns the generation request described by the config.
func (c *Config) Params() cardset.Params {
	return cardset.Params{
		CallingCards: c.CallingCards,
		GameCards:    c.GameCards,
		Columns:      c.Columns,
		Rows:         c.Rows,
	}
}

// Composer builds a composer from the layout settings.
func (c *Config) Composer() (*compose.Composer, error) {
	interp, err := compose.ParseInterpolation(c.Interpolation)
	if err != nil {
		return nil, err
	}
	return &compose.Composer{
		Insert: compose.InsertLayout{Width: c.Insert.Width, OffsetX: c.Insert.OffsetX, OffsetY: c.Insert.OffsetY},
		Page:   compose.SheetLayout{Width: c.Sheet.Width, Height: c.Sheet.Height, Margin: c.Sheet.Margin},
		Interp: interp,
	}, nil
}

// Validate checks the layout settings. Card counts are checked separately
// by Params().Validate once they are known.
func (c *Config) Validate() error {
	const op = "config.Validate"
	switch {
	case c.PicDir == "":
		return apperr.Input(op, "pic_dir must not be empty")
	case c.Workers < 0:
		return apperr.Input(op, "workers must not be negative, got %d", c.Workers)
	case c.Insert.Width < 1:
		return apperr.Input(op, "insert.width must be positive, got %d", c.Insert.Width)
	case c.Insert.OffsetX < 0 || c.Insert.OffsetY < 0:
		return apperr.Input(op, "insert offsets must not be negative, got (%d,%d)", c.Insert.OffsetX, c.Insert.OffsetY)
	case c.Sheet.Width < 1 || c.Sheet.Height < 1:
		return apperr.Input(op, "sheet size must be positive, got %dx%d", c.Sheet.Width, c.Sheet.Height)
	case c.Sheet.Margin < 0 || 2*c.Sheet.Margin >= c.Sheet.Width:
		return apperr.Input(op, "sheet.margin %d leaves no room on a %d pixel wide sheet", c.Sheet.Margin, c.Sheet.Width)
	}
	if _, err := compose.ParseInterpolation(c.Interpolation); err != nil {
		return err
	}
	return nil
}
