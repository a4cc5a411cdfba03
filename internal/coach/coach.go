// Package coach asks Gemini for pep talks and dashboard screenshot checks.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/logger"
)

// FallbackPepTalk is returned whenever a pep talk cannot be generated.
const FallbackPepTalk = "Traffic is the lifeblood of your survival. Every visitor is a chance to stay alive. Ship it today or vanish."

// FailedVerificationReason is the reason given when verification errors out.
const FailedVerificationReason = "Verification failed to process."

const pepTalkPrompt = "Give me a short, powerful, 3-sentence morning pep talk for a founder whose startup is 'Dead by Default'. " +
	"Focus on the necessity of survival, the daily hunt for unique visitors, and the aggressive mindset required to shift from default-dead to default-alive."

const verifyPrompt = `Analyze this screenshot of a startup dashboard (Google Analytics, Posthog, Stripe, Vercel, etc.).
Identify the 'Unique Visitors', 'Users', 'Active Sessions', or 'Total Traffic' metric.

Return a JSON object with:
{
  "verified": boolean,
  "metricValue": "The number or string found (e.g., '1,240')",
  "reason": "Brief explanation (e.g., 'Found 1.2k Unique Visitors in GA header')"
}`

// Generator is the slice of the Gemini models API the coach uses.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Verification is the result of checking a dashboard screenshot.
type Verification struct {
	Verified    bool    `json:"verified"`
	MetricValue *string `json:"metricValue"`
	Reason      string  `json:"reason"`
}

// Coach wraps a Generator with the prompts and fallbacks.
type Coach struct {
	gen   Generator
	model string
}

// New returns a coach that sends requests through gen.
func New(gen Generator, model string) *Coach {
	if model == "" {
		model = constants.DefaultCoachModel
	}
	return &Coach{gen: gen, model: model}
}

// NewFromAPIKey builds a coach backed by the Gemini API.
func NewFromAPIKey(ctx context.Context, apiKey, model string) (*Coach, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return New(client.Models, model), nil
}

// PepTalk returns a short generated pep talk, or FallbackPepTalk when the
// request fails or comes back empty.
func (c *Coach) PepTalk(ctx context.Context) string {
	contents := []*genai.Content{genai.NewContentFromText(pepTalkPrompt, genai.RoleUser)}
	resp, err := c.gen.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.9),
	})
	if err != nil {
		logger.Warn("Pep talk request failed", "error", err)
		return FallbackPepTalk
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackPepTalk
	}
	return text
}

var verificationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"verified":    {Type: genai.TypeBoolean},
		"metricValue": {Type: genai.TypeString},
		"reason":      {Type: genai.TypeString},
	},
	Required: []string{"verified", "metricValue", "reason"},
}

// VerifyScreenshot asks the model to find a traffic metric in a dashboard
// image. Any failure yields an unverified result with FailedVerificationReason.
func (c *Coach) VerifyScreenshot(ctx context.Context, image []byte, mimeType string) Verification {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(verifyPrompt),
	}
	resp, err := c.gen.GenerateContent(ctx, c.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   verificationSchema,
	})
	if err != nil {
		logger.Warn("Screenshot verification failed", "error", err)
		return failedVerification()
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return Verification{Reason: "No response"}
	}
	var v Verification
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		logger.Warn("Unparseable verification response", "error", err)
		return failedVerification()
	}
	return v
}

func failedVerification() Verification {
	return Verification{Reason: FailedVerificationReason}
}
