package schema

import (
	"encoding/json"
	"strings"

	"github.com/cube5963/feedo-cfes/internal/models"
)

// Config is the typed view of a Section's descriptor string. The variant
// returned is determined by the section type, never by the descriptor
// itself.
type Config interface {
	sectionConfig()
}

// ChoiceConfig holds the ordered option labels for radio and checkbox
// sections. Duplicates are allowed and order is preserved.
type ChoiceConfig struct {
	Options []string `json:"options"`
}

type StarConfig struct {
	MaxStars int      `json:"maxStars"`
	Labels   []string `json:"labels,omitempty"`
}

type SliderLabels struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type SliderConfig struct {
	Min       float64      `json:"min"`
	Max       float64      `json:"max"`
	Divisions int          `json:"divisions"`
	Labels    SliderLabels `json:"labels"`
}

// NoConfig is returned for text and two-choice sections, whose descriptor
// carries no configuration.
type NoConfig struct{}

func (ChoiceConfig) sectionConfig() {}
func (StarConfig) sectionConfig()   {}
func (SliderConfig) sectionConfig() {}
func (NoConfig) sectionConfig()     {}

const (
	DefaultMaxStars  = 5
	MinStars         = 3
	MaxStars         = 10
	DefaultDivisions = 5
)

func defaultChoice() ChoiceConfig {
	return ChoiceConfig{Options: []string{"選択肢1", "選択肢2"}}
}

func defaultSlider() SliderConfig {
	return SliderConfig{
		Min:       0,
		Max:       10,
		Divisions: DefaultDivisions,
		Labels:    SliderLabels{Min: "最小", Max: "最大"},
	}
}

// Parse interprets a section descriptor. It never fails: descriptors
// written under older schema versions, hand-edited rows, and plain garbage
// all resolve to the type's documented default. The second return reports
// whether any default stood in for a value the descriptor should have
// carried.
func Parse(sectionType models.SectionType, desc string) (Config, bool) {
	switch models.NormalizeSectionType(string(sectionType)) {
	case models.SectionRadio, models.SectionCheckbox:
		return parseChoice(desc)
	case models.SectionStar:
		return parseStar(desc)
	case models.SectionSlider:
		return parseSlider(desc)
	case models.SectionText, models.SectionTwoChoice:
		return NoConfig{}, false
	default:
		return NoConfig{}, true
	}
}

// rawDesc covers every field any schema version has stored. labels is
// decoded per type: an array for choice and star sections, an object for
// sliders.
type rawDesc struct {
	Labels    json.RawMessage `json:"labels"`
	Options   []string        `json:"options"`
	MaxStars  *float64        `json:"maxStars"`
	Min       *float64        `json:"min"`
	Max       *float64        `json:"max"`
	Divisions *float64        `json:"divisions"`
}

func looksStructured(desc string) bool {
	desc = strings.TrimSpace(desc)
	return strings.HasPrefix(desc, "{") && strings.HasSuffix(desc, "}")
}

func isBlank(desc string) bool {
	trimmed := strings.TrimSpace(desc)
	return trimmed == "" || trimmed == "{}"
}

func decode(desc string) (*rawDesc, bool) {
	var raw rawDesc
	if err := json.Unmarshal([]byte(desc), &raw); err != nil {
		return nil, false
	}
	return &raw, true
}

func parseChoice(desc string) (Config, bool) {
	if isBlank(desc) {
		return defaultChoice(), true
	}

	if looksStructured(desc) {
		if raw, ok := decode(desc); ok {
			var labels []string
			if len(raw.Labels) > 0 && json.Unmarshal(raw.Labels, &labels) == nil && len(labels) > 0 {
				return ChoiceConfig{Options: labels}, false
			}
			if len(raw.Options) > 0 {
				return ChoiceConfig{Options: raw.Options}, false
			}
		}
	}

	// Legacy rows store one option per line.
	if opts := legacyLines(desc); len(opts) > 0 {
		return ChoiceConfig{Options: opts}, false
	}
	return defaultChoice(), true
}

func legacyLines(desc string) []string {
	var opts []string
	for _, line := range strings.Split(desc, "\n") {
		if strings.TrimSpace(line) == "" || strings.ContainsAny(line, "{}") {
			continue
		}
		opts = append(opts, line)
	}
	return opts
}

func parseStar(desc string) (Config, bool) {
	if isBlank(desc) || !looksStructured(desc) {
		return StarConfig{MaxStars: DefaultMaxStars}, true
	}

	raw, ok := decode(desc)
	if !ok || raw.MaxStars == nil {
		return StarConfig{MaxStars: DefaultMaxStars}, true
	}

	stars := int(*raw.MaxStars)
	if stars < MinStars {
		stars = MinStars
	}
	if stars > MaxStars {
		stars = MaxStars
	}

	cfg := StarConfig{MaxStars: stars}
	if len(raw.Labels) > 0 {
		var labels []string
		if json.Unmarshal(raw.Labels, &labels) == nil {
			cfg.Labels = labels
		}
	}
	return cfg, false
}

func parseSlider(desc string) (Config, bool) {
	cfg := defaultSlider()
	if isBlank(desc) || !looksStructured(desc) {
		return cfg, true
	}

	raw, ok := decode(desc)
	if !ok {
		return cfg, true
	}

	// Field-wise fallback: a descriptor may carry any subset of the
	// settings, and zero values mean "unset" in every stored version.
	defaulted := false
	if raw.Min != nil {
		cfg.Min = *raw.Min
	} else {
		defaulted = true
	}
	if raw.Max != nil && *raw.Max != 0 {
		cfg.Max = *raw.Max
	} else {
		defaulted = true
	}
	if raw.Divisions != nil && int(*raw.Divisions) >= 1 {
		cfg.Divisions = int(*raw.Divisions)
	} else {
		defaulted = true
	}
	if len(raw.Labels) > 0 {
		var labels SliderLabels
		if json.Unmarshal(raw.Labels, &labels) == nil && labels.Min != "" && labels.Max != "" {
			cfg.Labels = labels
		} else {
			defaulted = true
		}
	} else {
		defaulted = true
	}
	return cfg, defaulted
}
