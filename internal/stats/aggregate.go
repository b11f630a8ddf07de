package stats

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/cube5963/feedo-cfes/internal/models"
)

// Summary is the type-specific half of a section's statistics. Exactly one
// variant applies per section type; sections with no qualifying responses
// carry no summary at all rather than zeroed or NaN fields.
type Summary interface {
	sectionSummary()
}

type ChoiceSummary struct {
	Choices map[string]int `json:"choices"`
}

type NumericSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type RatingSummary struct {
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

type TextSummary struct {
	AverageLength float64 `json:"averageLength"`
	MinLength     int     `json:"minLength"`
	MaxLength     int     `json:"maxLength"`
}

func (ChoiceSummary) sectionSummary()  {}
func (NumericSummary) sectionSummary() {}
func (RatingSummary) sectionSummary()  {}
func (TextSummary) sectionSummary()    {}

// SectionStatistics is the aggregation result for one section.
// TotalResponses counts every stored row, parseable or not; Responses holds
// the values that were extracted for downstream display.
type SectionStatistics struct {
	TotalResponses int
	SectionType    models.SectionType
	Responses      []any
	Summary        Summary
}

// MarshalJSON flattens the summary into the top-level object so the wire
// shape stays flat: `{totalResponses, sectionType, responses, choices, ...}`.
func (s SectionStatistics) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"totalResponses": s.TotalResponses,
		"sectionType":    s.SectionType,
		"responses":      s.Responses,
	}
	if s.Responses == nil {
		out["responses"] = []any{}
	}
	if s.Summary != nil {
		raw, err := json.Marshal(s.Summary)
		if err != nil {
			return nil, err
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// Aggregate computes a section's statistics from its raw stored answers.
// It is a pure function of the full answer set: deterministic and
// insensitive to row order, which is what makes recompute-from-scratch on
// every insert a correct live-update strategy.
func Aggregate(sectionType models.SectionType, raws []string) SectionStatistics {
	responses := make([]any, 0, len(raws))
	for _, raw := range raws {
		responses = append(responses, extractValue(raw))
	}

	result := SectionStatistics{
		TotalResponses: len(raws),
		SectionType:    sectionType,
		Responses:      responses,
	}

	switch models.NormalizeSectionType(string(sectionType)) {
	case models.SectionRadio, models.SectionCheckbox, models.SectionTwoChoice:
		result.Summary = aggregateChoices(responses)
	case models.SectionSlider:
		result.Summary = aggregateNumeric(responses)
	case models.SectionStar:
		result.Summary = aggregateRatings(responses)
	case models.SectionText:
		result.Summary = aggregateText(responses)
	default:
		// Unknown type tag: counts only.
	}
	return result
}

// extractValue unwraps the stored envelope `{"text": <value>, "predict": ...}`.
// Rows that predate the envelope, or that failed to serialize cleanly, fall
// back to the raw string so they still count as responses.
func extractValue(raw string) any {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err == nil {
		if text, ok := fields["text"]; ok {
			var value any
			if err := json.Unmarshal(text, &value); err == nil {
				return value
			}
		}
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		return value
	}
	return raw
}

func aggregateChoices(responses []any) Summary {
	choices := make(map[string]int)
	for _, r := range responses {
		switch v := r.(type) {
		case []any:
			// Checkbox answers: one increment per selected label.
			for _, item := range v {
				if label, ok := item.(string); ok {
					choices[label]++
				}
			}
		case string:
			choices[v]++
		}
	}
	return ChoiceSummary{Choices: choices}
}

func aggregateNumeric(responses []any) Summary {
	var values []float64
	for _, r := range responses {
		if v, ok := r.(float64); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	sum, min, max := 0.0, values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return NumericSummary{
		Count:   len(values),
		Average: sum / float64(len(values)),
		Min:     min,
		Max:     max,
	}
}

func aggregateRatings(responses []any) Summary {
	distribution := make(map[int]int)
	sum, count := 0.0, 0
	for _, r := range responses {
		if v, ok := r.(float64); ok {
			sum += v
			count++
			distribution[int(v)]++
		}
	}
	if count == 0 {
		return nil
	}
	return RatingSummary{
		AverageRating:      sum / float64(count),
		RatingDistribution: distribution,
	}
}

func aggregateText(responses []any) Summary {
	var lengths []int
	for _, r := range responses {
		if s, ok := r.(string); ok && s != "" {
			lengths = append(lengths, utf8.RuneCountInString(s))
		}
	}
	if len(lengths) == 0 {
		return nil
	}

	total, min, max := 0, lengths[0], lengths[0]
	for _, l := range lengths {
		total += l
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}
	return TextSummary{
		AverageLength: float64(total) / float64(len(lengths)),
		MinLength:     min,
		MaxLength:     max,
	}
}
