// Package config loads settings from built-in defaults, an optional YAML
// file, a .env file and PD_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PD_"

// Config is the full set of runtime settings.
type Config struct {
	Window   Window   `yaml:"window"`
	Rules    Rules    `yaml:"rules"`
	Audio    Audio    `yaml:"audio"`
	Terminal Terminal `yaml:"terminal"`
	Log      Log      `yaml:"log"`
	Theme    string   `yaml:"theme"`
	Code     []string `yaml:"code"`
}

// Window sizes the desktop host.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Rules mirrors invaders.Rules field for field in YAML form, so the two
// convert directly.
type Rules struct {
	PlayerSize         float64       `yaml:"player_size"`
	PlayerSpeed        float64       `yaml:"player_speed"`
	PlayerBottomOffset float64       `yaml:"player_bottom_offset"`
	FireCooldown       time.Duration `yaml:"fire_cooldown"`
	LaserWidth         float64       `yaml:"laser_width"`
	LaserHeight        float64       `yaml:"laser_height"`
	LaserSpeed         float64       `yaml:"laser_speed"`
	LaserMuzzle        float64       `yaml:"laser_muzzle"`
	LaserCullY         float64       `yaml:"laser_cull_y"`
	Rows               int           `yaml:"rows"`
	MaxCols            int           `yaml:"max_cols"`
	ColumnSlot         float64       `yaml:"column_slot"`
	SpacingX           float64       `yaml:"spacing_x"`
	SpacingY           float64       `yaml:"spacing_y"`
	InvaderSize        float64       `yaml:"invader_size"`
	GridTop            float64       `yaml:"grid_top"`
	WallMargin         float64       `yaml:"wall_margin"`
	DropStep           float64       `yaml:"drop_step"`
	InitialSpeed       float64       `yaml:"initial_speed"`
	SpeedIncrement     float64       `yaml:"speed_increment"`
	PointsPerHit       int           `yaml:"points_per_hit"`
	KeepScoreOnResize  bool          `yaml:"keep_score_on_resize"`
}

// Audio controls the sound effects.
type Audio struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // in beep's log2 units, 0 is unchanged
}

// Terminal tunes the tcell frontend.
type Terminal struct {
	CellWidth  int           `yaml:"cell_width"`
	CellHeight int           `yaml:"cell_height"`
	FrameRate  int           `yaml:"frame_rate"`
	HoldWindow time.Duration `yaml:"hold_window"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{Width: 1000, Height: 800, Title: "Planetary Defense"},
		Rules:  FromEngine(invaders.DefaultRules()),
		Audio:  Audio{Enabled: false, SampleRate: 44100, Volume: -1},
		Terminal: Terminal{
			CellWidth:  8,
			CellHeight: 16,
			FrameRate:  60,
			HoldWindow: 120 * time.Millisecond,
		},
		Log:   Log{Level: "info", Format: "text"},
		Theme: "default",
	}
}

// FromEngine converts engine rules to their YAML form.
func FromEngine(r invaders.Rules) Rules { return Rules(r) }

// ToEngine converts the YAML form to engine rules.
func (r Rules) ToEngine() invaders.Rules { return invaders.Rules(r) }

// Load builds a Config. path may be empty to skip the YAML file. A missing
// .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return nil
}

// applyEnv overrides fields from PD_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	ints := map[string]*int{
		"WIDTH":       &cfg.Window.Width,
		"HEIGHT":      &cfg.Window.Height,
		"SAMPLE_RATE": &cfg.Audio.SampleRate,
		"FRAME_RATE":  &cfg.Terminal.FrameRate,
	}
	for name, dst := range ints {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, ErrInvalid)
			}
			*dst = n
		}
	}
	bools := map[string]*bool{
		"AUDIO":                &cfg.Audio.Enabled,
		"KEEP_SCORE_ON_RESIZE": &cfg.Rules.KeepScoreOnResize,
	}
	for name, dst := range bools {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, ErrInvalid)
			}
			*dst = b
		}
	}
	durations := map[string]*time.Duration{
		"FIRE_COOLDOWN": &cfg.Rules.FireCooldown,
		"HOLD_WINDOW":   &cfg.Terminal.HoldWindow,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, ErrInvalid)
			}
			*dst = d
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := get("THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := get("CODE"); ok {
		cfg.Code = strings.Fields(v)
	}
	return nil
}

// Validate rejects settings the engine or hosts cannot work with.
func (c Config) Validate() error {
	var problems []string
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, "window size must be positive")
	}
	r := c.Rules
	if r.FireCooldown < 0 {
		problems = append(problems, "fire_cooldown must not be negative")
	}
	if r.Rows <= 0 || r.MaxCols <= 0 {
		problems = append(problems, "rows and max_cols must be positive")
	}
	if r.ColumnSlot <= 0 || r.SpacingX <= 0 || r.SpacingY <= 0 {
		problems = append(problems, "grid spacing must be positive")
	}
	if r.PlayerSize <= 0 || r.InvaderSize <= 0 || r.LaserWidth <= 0 || r.LaserHeight <= 0 {
		problems = append(problems, "entity sizes must be positive")
	}
	if r.PlayerSpeed < 0 || r.LaserSpeed <= 0 {
		problems = append(problems, "player_speed must not be negative and laser_speed must be positive")
	}
	if r.InitialSpeed < 0 || r.SpeedIncrement < 0 {
		problems = append(problems, "sweep speeds must not be negative")
	}
	if r.PointsPerHit < 0 {
		problems = append(problems, "points_per_hit must not be negative")
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		problems = append(problems, "sample_rate must be positive when audio is enabled")
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 || c.Terminal.FrameRate <= 0 {
		problems = append(problems, "terminal cell size and frame rate must be positive")
	}
	if c.Terminal.HoldWindow <= 0 {
		problems = append(problems, "hold_window must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("log format %q is not text or json", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
