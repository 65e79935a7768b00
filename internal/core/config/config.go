package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CynaCons/powertimeline-layout/internal/core/constants"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

// Duration wraps time.Duration so YAML configs can write "30s" or "14d"-style
// values as strings, while bare integers are read as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}

	return fmt.Errorf("duration must be a string or integer seconds")
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LayoutConfig is the explicit value object holding every tunable the layout
// pipeline consumes: card geometry, pitch, chrome margins and window limits.
// Passing it in (rather than reading package globals) keeps passes
// deterministic under varied configurations.
type LayoutConfig struct {
	// MinClusterPitchPx is the minimum horizontal distance between cluster
	// anchors. Projected events closer than this merge into one cluster.
	MinClusterPitchPx float64 `yaml:"min_cluster_pitch_px" json:"minClusterPitchPx"`

	// Card geometry per density level.
	CardWidthPx         float64 `yaml:"card_width_px" json:"cardWidthPx"`
	FullCardHeightPx    float64 `yaml:"full_card_height_px" json:"fullCardHeightPx"`
	CompactCardHeightPx float64 `yaml:"compact_card_height_px" json:"compactCardHeightPx"`
	TitleCardHeightPx   float64 `yaml:"title_card_height_px" json:"titleCardHeightPx"`
	BadgeWidthPx        float64 `yaml:"badge_width_px" json:"badgeWidthPx"`
	BadgeHeightPx       float64 `yaml:"badge_height_px" json:"badgeHeightPx"`

	// InterCardMarginPx separates stacked cards inside one half-column.
	InterCardMarginPx float64 `yaml:"inter_card_margin_px" json:"interCardMarginPx"`

	// AxisGapPx separates the axis line from the innermost card.
	AxisGapPx float64 `yaml:"axis_gap_px" json:"axisGapPx"`

	// Margins are the chrome exclusion bands around the usable area.
	Margins model.ChromeMargins `yaml:"margins" json:"margins"`

	// MinSpan is the narrowest view window zoom may produce.
	MinSpan Duration `yaml:"min_span" json:"minSpan"`

	// DefaultSpan is the fit-all fallback window when there are no events.
	DefaultSpan Duration `yaml:"default_span" json:"defaultSpan"`

	// OverflowTolerance is the fraction of the data span the window may
	// exceed the data range by, per side.
	OverflowTolerance float64 `yaml:"overflow_tolerance" json:"overflowTolerance"`
}

// Default returns the built-in configuration.
func Default() *LayoutConfig {
	return &LayoutConfig{
		MinClusterPitchPx:   constants.DefaultMinClusterPitchPx,
		CardWidthPx:         constants.DefaultCardWidthPx,
		FullCardHeightPx:    constants.DefaultFullCardHeightPx,
		CompactCardHeightPx: constants.DefaultCompactCardHeightPx,
		TitleCardHeightPx:   constants.DefaultTitleCardHeightPx,
		BadgeWidthPx:        constants.DefaultBadgeWidthPx,
		BadgeHeightPx:       constants.DefaultBadgeHeightPx,
		InterCardMarginPx:   constants.DefaultInterCardMarginPx,
		AxisGapPx:           constants.DefaultAxisGapPx,
		Margins: model.ChromeMargins{
			Top:    48,
			Bottom: 64,
			Left:   40,
			Right:  40,
		},
		MinSpan:           Duration(constants.DefaultMinSpan),
		DefaultSpan:       Duration(constants.DefaultSpan),
		OverflowTolerance: constants.DefaultOverflowTolerance,
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *LayoutConfig) Normalize() {
	def := Default()

	if c.MinClusterPitchPx <= 0 {
		c.MinClusterPitchPx = def.MinClusterPitchPx
	}
	if c.CardWidthPx <= 0 {
		c.CardWidthPx = def.CardWidthPx
	}
	if c.FullCardHeightPx <= 0 {
		c.FullCardHeightPx = def.FullCardHeightPx
	}
	if c.CompactCardHeightPx <= 0 {
		c.CompactCardHeightPx = def.CompactCardHeightPx
	}
	if c.TitleCardHeightPx <= 0 {
		c.TitleCardHeightPx = def.TitleCardHeightPx
	}
	if c.BadgeWidthPx <= 0 {
		c.BadgeWidthPx = def.BadgeWidthPx
	}
	if c.BadgeHeightPx <= 0 {
		c.BadgeHeightPx = def.BadgeHeightPx
	}
	if c.InterCardMarginPx < 0 {
		c.InterCardMarginPx = def.InterCardMarginPx
	}
	if c.AxisGapPx <= 0 {
		c.AxisGapPx = def.AxisGapPx
	}
	if c.Margins.Top < 0 {
		c.Margins.Top = 0
	}
	if c.Margins.Bottom < 0 {
		c.Margins.Bottom = 0
	}
	if c.Margins.Left < 0 {
		c.Margins.Left = 0
	}
	if c.Margins.Right < 0 {
		c.Margins.Right = 0
	}
	if c.MinSpan <= 0 {
		c.MinSpan = def.MinSpan
	}
	if c.DefaultSpan <= 0 {
		c.DefaultSpan = def.DefaultSpan
	}
	if c.OverflowTolerance < 0 {
		c.OverflowTolerance = def.OverflowTolerance
	}

	// Density ordering must hold for the downgrade search to make sense.
	if c.CompactCardHeightPx > c.FullCardHeightPx {
		c.CompactCardHeightPx = c.FullCardHeightPx
	}
	if c.TitleCardHeightPx > c.CompactCardHeightPx {
		c.TitleCardHeightPx = c.CompactCardHeightPx
	}

	// Elements wider than the anchor pitch would let neighboring stacks
	// touch, which breaks the no-overlap construction guarantee.
	if c.CardWidthPx > c.MinClusterPitchPx {
		c.CardWidthPx = c.MinClusterPitchPx
	}
	if c.BadgeWidthPx > c.MinClusterPitchPx {
		c.BadgeWidthPx = c.MinClusterPitchPx
	}
}

// CardHeight returns the configured pixel height for a card type.
func (c *LayoutConfig) CardHeight(ct model.CardType) float64 {
	switch ct {
	case model.CardFull:
		return c.FullCardHeightPx
	case model.CardCompact:
		return c.CompactCardHeightPx
	case model.CardTitleOnly:
		return c.TitleCardHeightPx
	case model.CardMulti:
		return c.BadgeHeightPx
	default:
		return 0
	}
}

// Load loads configuration from the given YAML path. A missing file writes
// the defaults to that path and returns them, so first runs leave an
// editable config behind.
func Load(path string) (*LayoutConfig, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg LayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically via a temp file and rename.
func Save(path string, cfg *LayoutConfig) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".powertimeline-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
