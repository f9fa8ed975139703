package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Crop is one recommended crop with the rationale for it.
type Crop struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Inputs describes the farmer's land profile.
type Inputs struct {
	Location      string
	LandSize      string
	LandType      string
	LandHealth    string
	Season        string
	WaterFacility string
	Duration      string
}

const recommendedCropCount = 5

// DefaultCrops is the fallback recommendation used when no provider
// is configured or the provider's answer cannot be used.
func DefaultCrops() []Crop {
	return []Crop{
		{Name: "Wheat", Reason: "Suitable for most regions and seasons"},
		{Name: "Rice", Reason: "Good for areas with water availability"},
		{Name: "Cotton", Reason: "Profitable cash crop for many regions"},
		{Name: "Sugarcane", Reason: "High value crop with good returns"},
		{Name: "Maize", Reason: "Versatile crop with multiple uses"},
	}
}

// Advisor turns land profiles into crop recommendations.
type Advisor struct {
	provider Provider
	logger   *zap.Logger
}

// NewAdvisor wraps a provider. A nil provider is valid and yields the
// default crops for every request.
func NewAdvisor(provider Provider, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{provider: provider, logger: logger}
}

// RecommendCrops returns exactly five crops for the given inputs. The
// call never fails: provider errors and malformed answers fall back to
// the default crops, and short answers are padded with them.
func (a *Advisor) RecommendCrops(ctx context.Context, in Inputs) []Crop {
	if a.provider == nil {
		return DefaultCrops()
	}

	raw, err := a.provider.Complete(ctx, cropPrompt(in))
	if err != nil {
		a.logger.Warn("advisory provider failed, using defaults", zap.Error(err))
		return DefaultCrops()
	}

	crops, err := parseCrops(raw)
	if err != nil {
		a.logger.Warn("advisory answer unusable, using defaults", zap.Error(err))
		return DefaultCrops()
	}
	return padCrops(crops)
}

func cropPrompt(in Inputs) string {
	return fmt.Sprintf(`You are a 40+ year experienced farmer. Based on these inputs:
Location: %s, Land Size: %s, Land Type: %s, Land Health: %s, Season: %s, Water Facility: %s, Duration: %s

Recommend exactly 5 crops that are most suitable for these conditions.
Return ONLY a JSON array with this exact structure:
[
  {"name": "Crop Name 1", "reason": "Brief reason for recommendation"},
  {"name": "Crop Name 2", "reason": "Brief reason for recommendation"},
  {"name": "Crop Name 3", "reason": "Brief reason for recommendation"},
  {"name": "Crop Name 4", "reason": "Brief reason for recommendation"},
  {"name": "Crop Name 5", "reason": "Brief reason for recommendation"}
]

Do not include any additional text, explanations, or markdown formatting. Return only the JSON array.`,
		in.Location, in.LandSize, in.LandType, in.LandHealth, in.Season, in.WaterFacility, in.Duration)
}

var jsonFence = regexp.MustCompile("```json\\s*([\\s\\S]*?)```")

// StripJSONFences removes markdown code fences models wrap JSON
// answers in despite instructions.
func StripJSONFences(s string) string {
	s = jsonFence.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func parseCrops(raw string) ([]Crop, error) {
	var crops []Crop
	if err := json.Unmarshal([]byte(StripJSONFences(raw)), &crops); err != nil {
		return nil, fmt.Errorf("parse crops: %w", err)
	}
	return crops, nil
}

// padCrops fills short lists from the defaults and truncates long
// ones, so callers always see exactly five entries.
func padCrops(crops []Crop) []Crop {
	defaults := DefaultCrops()
	for len(crops) < recommendedCropCount {
		crops = append(crops, defaults[len(crops)])
	}
	return crops[:recommendedCropCount]
}
