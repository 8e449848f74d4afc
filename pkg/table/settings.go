package table

import (
	"fmt"
	"math"
	"strings"
)

// Strategy selects how cells are seeded on a page
type Strategy int

const (
	// Lines builds cells from drawn rules; a cell may miss one border.
	Lines Strategy = iota
	// LinesStrict builds cells from drawn rules bounded on all four sides.
	LinesStrict
	// Text builds a grid from aligned words; drawn rules are ignored.
	Text
	// Explicit builds cells from caller-supplied rule coordinates.
	Explicit
)

var strategyNames = [...]string{
	Lines:       "lines",
	LinesStrict: "lines_strict",
	Text:        "text",
	Explicit:    "explicit",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy converts a name such as "lines" or "lines-strict" to a
// Strategy. Matching ignores case; '-' and '_' are interchangeable.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, n := range strategyNames {
		if n == normalized {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML lets settings files name the strategy as a string
func (s *Strategy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(name))
}

// MarshalYAML writes the strategy name
func (s Strategy) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Default tuning values
const (
	DefaultTolerance          = 3.0
	DefaultMinWordsVertical   = 3
	DefaultMinWordsHorizontal = 1
	DefaultTextTolerance      = 3.0
	DefaultMaxEdges           = 2000
)

// Settings controls table detection on one page. The zero value is not
// usable; start from DefaultSettings or NewSettings.
type Settings struct {
	Strategy              Strategy `yaml:"strategy" json:"strategy"`
	SnapTolerance         float64  `yaml:"snap_tolerance" json:"snap_tolerance"`
	JoinTolerance         float64  `yaml:"join_tolerance" json:"join_tolerance"`
	EdgeMinLength         float64  `yaml:"edge_min_length" json:"edge_min_length"`
	IntersectionTolerance float64  `yaml:"intersection_tolerance" json:"intersection_tolerance"`
	MinWordsVertical      int      `yaml:"min_words_vertical" json:"min_words_vertical"`
	MinWordsHorizontal    int      `yaml:"min_words_horizontal" json:"min_words_horizontal"`

	// TextTolerance groups a cell's characters into lines and words.
	TextTolerance float64 `yaml:"text_tolerance" json:"text_tolerance"`
	// MaxEdges caps the merged edge count per page before the quadratic
	// intersection scan runs.
	MaxEdges int `yaml:"max_edges" json:"max_edges"`
	// TextFallback retries a Lines page with the Text strategy when no cell
	// was found.
	TextFallback bool `yaml:"text_fallback" json:"text_fallback"`

	// Rule coordinates for the Explicit strategy
	ExplicitVerticalLines   []float64 `yaml:"explicit_vertical_lines,omitempty" json:"explicit_vertical_lines,omitempty"`
	ExplicitHorizontalLines []float64 `yaml:"explicit_horizontal_lines,omitempty" json:"explicit_horizontal_lines,omitempty"`
}

// DefaultSettings returns the default configuration: Lines strategy,
// 3.0 for every tolerance, and 3/1 vertical/horizontal word minimums.
func DefaultSettings() Settings {
	return Settings{
		Strategy:              Lines,
		SnapTolerance:         DefaultTolerance,
		JoinTolerance:         DefaultTolerance,
		EdgeMinLength:         DefaultTolerance,
		IntersectionTolerance: DefaultTolerance,
		MinWordsVertical:      DefaultMinWordsVertical,
		MinWordsHorizontal:    DefaultMinWordsHorizontal,
		TextTolerance:         DefaultTextTolerance,
		MaxEdges:              DefaultMaxEdges,
	}
}

// Option is a function that modifies table detection settings
type Option func(*Settings)

// NewSettings applies options on top of DefaultSettings
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithStrategy sets the cell-seeding strategy
func WithStrategy(strategy Strategy) Option {
	return func(s *Settings) {
		s.Strategy = strategy
	}
}

// WithSnapTolerance sets how far apart two rules may be and still be snapped together
func WithSnapTolerance(tolerance float64) Option {
	return func(s *Settings) {
		s.SnapTolerance = tolerance
	}
}

// WithJoinTolerance sets the largest gap bridged between collinear segments
func WithJoinTolerance(tolerance float64) Option {
	return func(s *Settings) {
		s.JoinTolerance = tolerance
	}
}

// WithEdgeMinLength sets the shortest edge kept at extraction
func WithEdgeMinLength(length float64) Option {
	return func(s *Settings) {
		s.EdgeMinLength = length
	}
}

// WithIntersectionTolerance sets how close a horizontal and vertical edge must come to cross
func WithIntersectionTolerance(tolerance float64) Option {
	return func(s *Settings) {
		s.IntersectionTolerance = tolerance
	}
}

// WithMinWords sets the Text strategy's minimum column (vertical) and row
// (horizontal) populations
func WithMinWords(vertical, horizontal int) Option {
	return func(s *Settings) {
		s.MinWordsVertical = vertical
		s.MinWordsHorizontal = horizontal
	}
}

// WithTextTolerance sets the tolerance used when assembling cell text
func WithTextTolerance(tolerance float64) Option {
	return func(s *Settings) {
		s.TextTolerance = tolerance
	}
}

// WithMaxEdges sets the per-page edge ceiling
func WithMaxEdges(n int) Option {
	return func(s *Settings) {
		s.MaxEdges = n
	}
}

// WithTextFallback enables the Lines to Text retry
func WithTextFallback(enabled bool) Option {
	return func(s *Settings) {
		s.TextFallback = enabled
	}
}

// WithExplicitLines sets the rule coordinates for the Explicit strategy
func WithExplicitLines(vertical, horizontal []float64) Option {
	return func(s *Settings) {
		s.Strategy = Explicit
		s.ExplicitVerticalLines = append([]float64(nil), vertical...)
		s.ExplicitHorizontalLines = append([]float64(nil), horizontal...)
	}
}

// Validate reports the first setting that cannot be used
func (s Settings) Validate() error {
	if _, err := s.Strategy.MarshalText(); err != nil {
		return err
	}
	tolerances := []struct {
		name  string
		value float64
	}{
		{"snap_tolerance", s.SnapTolerance},
		{"join_tolerance", s.JoinTolerance},
		{"edge_min_length", s.EdgeMinLength},
		{"intersection_tolerance", s.IntersectionTolerance},
		{"text_tolerance", s.TextTolerance},
	}
	for _, t := range tolerances {
		if t.value < 0 || math.IsNaN(t.value) || math.IsInf(t.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidSettings, t.name, t.value)
		}
	}
	if s.MinWordsVertical < 0 || s.MinWordsHorizontal < 0 {
		return fmt.Errorf("%w: word minimums must not be negative", ErrInvalidSettings)
	}
	if s.MaxEdges <= 0 {
		return fmt.Errorf("%w: max_edges must be positive, got %d", ErrInvalidSettings, s.MaxEdges)
	}
	return nil
}
