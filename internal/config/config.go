package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/mazznoer/csscolorparser"

	"github.com/inamate/sketchpad/internal/color"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	StaticDir      string `envconfig:"STATIC_DIR"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080,http://localhost:5173"`
	ExportWidth    int    `envconfig:"EXPORT_WIDTH" default:"800"`
	ExportHeight   int    `envconfig:"EXPORT_HEIGHT" default:"600"`
	Theme          Theme  `envconfig:"THEME"`
}

// Theme is the look of a sketch. It is read once at startup and shared by
// pointer with every drawable; nothing writes to it afterwards.
type Theme struct {
	// PointDiameter is the radius of the ring drawn around a placed point and
	// the half-width of its hit box.
	PointDiameter float64 `envconfig:"POINT_DIAMETER" default:"11"`
	PointColor    string  `envconfig:"POINT_COLOR" default:"#FF0000"`

	// SelectedColor set to the empty string derives a darker PointColor.
	SelectedColor string `envconfig:"SELECTED_COLOR" default:"green"`

	QuadColor       string  `envconfig:"QUAD_COLOR" default:"blue"`
	CircleColor     string  `envconfig:"CIRCLE_COLOR" default:"green"`
	FontColor       string  `envconfig:"FONT_COLOR" default:"black"`
	Font            string  `envconfig:"FONT" default:"normal 12px Arial"`
	LabelLineHeight float64 `envconfig:"LABEL_LINE_HEIGHT" default:"15"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Theme.SelectedColor == "" {
		dark, err := color.Darken(cfg.Theme.PointColor)
		if err != nil {
			return nil, fmt.Errorf("derive selected color: %w", err)
		}
		cfg.Theme.SelectedColor = dark
	}
	if err := cfg.Theme.Validate(); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return &cfg, nil
}

// DefaultTheme returns the theme Load produces with an empty environment.
func DefaultTheme() *Theme {
	return &Theme{
		PointDiameter:   11,
		PointColor:      "#FF0000",
		SelectedColor:   "green",
		QuadColor:       "blue",
		CircleColor:     "green",
		FontColor:       "black",
		Font:            "normal 12px Arial",
		LabelLineHeight: 15,
	}
}

func (t *Theme) Validate() error {
	if t.PointDiameter <= 0 {
		return errors.New("point diameter must be positive")
	}
	colors := []struct {
		name, value string
	}{
		{"point color", t.PointColor},
		{"selected color", t.SelectedColor},
		{"quad color", t.QuadColor},
		{"circle color", t.CircleColor},
		{"font color", t.FontColor},
	}
	for _, c := range colors {
		if _, err := csscolorparser.Parse(c.value); err != nil {
			return fmt.Errorf("%s %q: %w", c.name, c.value, err)
		}
	}
	if strings.TrimSpace(t.Font) == "" {
		return errors.New("font is required")
	}
	return nil
}

// Origins splits AllowedOrigins into its comma separated entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
