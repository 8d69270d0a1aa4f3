package retained

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of a Manager. Durations are read from TOML as
// milliseconds.
type Config struct {
	DoubleClickTime   time.Duration `toml:"-"`
	KeyRepeatDelay    time.Duration `toml:"-"`
	KeyRepeatInterval time.Duration `toml:"-"`
	ToolTipDelay      time.Duration `toml:"-"`
	ToolTipDismiss    time.Duration `toml:"-"`

	// TextureResizeIncrement aligns cached surface sizes so that small
	// resizes reuse the existing surface.
	TextureResizeIncrement int `toml:"texture_resize_increment"`

	// DragThreshold is the distance in pixels the cursor must travel while a
	// button is held before IsDragging reports true.
	DragThreshold int `toml:"drag_threshold"`

	// ResizerSize is the default border thickness used for resize hit zones
	// when the skin does not provide one.
	ResizerSize int `toml:"resizer_size"`

	AutoUnfocus     bool `toml:"auto_unfocus"`
	OutlineMoving   bool `toml:"outline_moving"`
	OutlineResizing bool `toml:"outline_resizing"`
	ToolTipsEnabled bool `toml:"tooltips"`
}

// DefaultConfig returns the standard timing and sizing values.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:        500 * time.Millisecond,
		KeyRepeatDelay:         DefaultKeyRepeatDelay,
		KeyRepeatInterval:      DefaultKeyRepeatInterval,
		ToolTipDelay:           500 * time.Millisecond,
		ToolTipDismiss:         10 * time.Second,
		TextureResizeIncrement: 32,
		DragThreshold:          4,
		ResizerSize:            4,
		AutoUnfocus:            true,
		ToolTipsEnabled:        true,
	}
}

// configFile mirrors Config with millisecond durations.
type configFile struct {
	Config
	DoubleClickMS       *int64 `toml:"double_click_ms"`
	KeyRepeatDelayMS    *int64 `toml:"key_repeat_delay_ms"`
	KeyRepeatIntervalMS *int64 `toml:"key_repeat_interval_ms"`
	ToolTipDelayMS      *int64 `toml:"tooltip_delay_ms"`
	ToolTipDismissMS    *int64 `toml:"tooltip_dismiss_ms"`
}

// ParseConfig decodes TOML on top of DefaultConfig. Keys absent from data keep
// their default value; unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	file := configFile{Config: DefaultConfig()}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			row, col := serr.Errors[0].Position()
			return Config{}, &ConfigError{Source: "config", Item: fmt.Sprintf("line %d column %d", row, col), Err: err}
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, &ConfigError{Source: "config", Item: fmt.Sprintf("line %d column %d", row, col), Err: err}
		}
		return Config{}, &ConfigError{Source: "config", Err: err}
	}

	cfg := file.Config
	ms := func(dst *time.Duration, v *int64) {
		if v != nil {
			*dst = time.Duration(*v) * time.Millisecond
		}
	}
	ms(&cfg.DoubleClickTime, file.DoubleClickMS)
	ms(&cfg.KeyRepeatDelay, file.KeyRepeatDelayMS)
	ms(&cfg.KeyRepeatInterval, file.KeyRepeatIntervalMS)
	ms(&cfg.ToolTipDelay, file.ToolTipDelayMS)
	ms(&cfg.ToolTipDismiss, file.ToolTipDismissMS)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Source: path, Err: err}
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Source = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every value is in range.
func (c Config) Validate() error {
	check := func(name string, bad bool, v any) error {
		if bad {
			return &InvalidValueError{Control: "config", Property: name, Value: v}
		}
		return nil
	}
	return errors.Join(
		check("double_click_ms", c.DoubleClickTime <= 0, c.DoubleClickTime),
		check("key_repeat_delay_ms", c.KeyRepeatDelay <= 0, c.KeyRepeatDelay),
		check("key_repeat_interval_ms", c.KeyRepeatInterval <= 0, c.KeyRepeatInterval),
		check("tooltip_delay_ms", c.ToolTipDelay < 0, c.ToolTipDelay),
		check("tooltip_dismiss_ms", c.ToolTipDismiss < 0, c.ToolTipDismiss),
		check("texture_resize_increment", c.TextureResizeIncrement < 1, c.TextureResizeIncrement),
		check("drag_threshold", c.DragThreshold < 0, c.DragThreshold),
		check("resizer_size", c.ResizerSize < 0, c.ResizerSize),
	)
}
