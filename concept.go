package cloudmorph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// ConceptResult is the configuration payload the AI service maps a
// free-text concept onto.
type ConceptResult struct {
	PrimaryColorHex string    `json:"primaryColorHex"`
	ColorPalette    [5]string `json:"colorPalette"`
	Speed           float32   `json:"speed"`
	NoiseStrength   float32   `json:"noiseStrength"`
	Shape           Shape     `json:"shape"`
	Reasoning       string    `json:"reasoning"`
}

// ConceptMapper is the capability interface over the AI service.
type ConceptMapper interface {
	MapConcept(ctx context.Context, text string) (ConceptResult, error)
}

// FallbackReasoning is shown whenever the service could not be reached or
// answered garbage. Informational only; never a crash.
const FallbackReasoning = "Could not reach the concept service; using a neutral look instead."

// FallbackConcept is the fixed neutral configuration substituted on any
// mapper failure.
func FallbackConcept() ConceptResult {
	cfg := DefaultConfig()
	return ConceptResult{
		PrimaryColorHex: cfg.ColorPalette[2],
		ColorPalette:    cfg.ColorPalette,
		Speed:           cfg.Speed,
		NoiseStrength:   cfg.NoiseStrength,
		Shape:           cfg.Shape,
		Reasoning:       FallbackReasoning,
	}
}

// HTTPConceptMapper talks JSON over HTTP to the concept service.
type HTTPConceptMapper struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPConceptMapper(baseURL, apiKey string) *HTTPConceptMapper {
	return &HTTPConceptMapper{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// wire-format palette is a plain slice so a wrong-length answer is a
// validation error here, not a decode panic downstream.
type conceptWire struct {
	PrimaryColorHex string   `json:"primaryColorHex"`
	ColorPalette    []string `json:"colorPalette"`
	Speed           float32  `json:"speed"`
	NoiseStrength   float32  `json:"noiseStrength"`
	Shape           string   `json:"shape"`
	Reasoning       string   `json:"reasoning"`
}

func (m *HTTPConceptMapper) MapConcept(ctx context.Context, text string) (ConceptResult, error) {
	body, err := json.Marshal(map[string]string{"concept": text})
	if err != nil {
		return ConceptResult{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL, bytes.NewReader(body))
	if err != nil {
		return ConceptResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if m.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.APIKey)
	}

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return ConceptResult{}, fmt.Errorf("concept request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ConceptResult{}, fmt.Errorf("concept service returned %s", resp.Status)
	}

	var wire conceptWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return ConceptResult{}, fmt.Errorf("decode response: %w", err)
	}
	return validateConcept(wire)
}

func validateConcept(wire conceptWire) (ConceptResult, error) {
	if len(wire.ColorPalette) != 5 {
		return ConceptResult{}, fmt.Errorf("palette must have 5 entries, got %d", len(wire.ColorPalette))
	}
	if wire.Speed < 0 || wire.NoiseStrength < 0 {
		return ConceptResult{}, fmt.Errorf("negative speed or noise strength")
	}
	shape, ok := ParseShape(wire.Shape)
	if !ok {
		return ConceptResult{}, fmt.Errorf("unknown shape %q", wire.Shape)
	}

	res := ConceptResult{
		PrimaryColorHex: wire.PrimaryColorHex,
		Speed:           wire.Speed,
		NoiseStrength:   wire.NoiseStrength,
		Shape:           shape,
		Reasoning:       wire.Reasoning,
	}
	for i, hex := range wire.ColorPalette {
		if _, err := colorful.Hex(hex); err != nil {
			return ConceptResult{}, fmt.Errorf("palette entry %d (%q): %w", i, hex, err)
		}
		res.ColorPalette[i] = hex
	}
	return res, nil
}

// ConceptService is the boundary the UI calls. Failures never escape:
// the fallback config is applied instead and the outcome says so.
type ConceptService struct {
	Mapper ConceptMapper
	logger Logger
}

// Apply maps text to a config and writes it into cfg. Returns the result
// actually applied (fallback on any failure) and whether the mapper
// answered.
func (s *ConceptService) Apply(ctx context.Context, text string, cfg *ParticleConfig) (ConceptResult, bool) {
	res, err := s.Mapper.MapConcept(ctx, text)
	ok := err == nil
	if err != nil {
		s.logger.Warnf("concept mapping failed for %q: %v", text, err)
		res = FallbackConcept()
	}

	cfg.ColorPalette = res.ColorPalette
	cfg.Speed = res.Speed
	cfg.NoiseStrength = res.NoiseStrength
	cfg.Shape = res.Shape
	return res, ok
}

type ConceptModule struct {
	Mapper ConceptMapper
}

func (m ConceptModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&ConceptService{
		Mapper: m.Mapper,
		logger: app.Logger(),
	})
}
