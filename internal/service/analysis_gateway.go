package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"careervision/internal/apperrors"
	"careervision/internal/catalog"
	"careervision/internal/config"
	"careervision/internal/metrics"
	"careervision/internal/model"

	"github.com/kaptinlin/jsonrepair"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// analysisSchema is the shape a model reply must satisfy before it is trusted
const analysisSchema = `{
  "type": "object",
  "required": ["topType", "topTwoCode", "summary", "recommendations", "careerAdvice"],
  "properties": {
    "topType": {"type": "string", "minLength": 1},
    "topTwoCode": {"type": "string", "minLength": 2, "maxLength": 2},
    "summary": {"type": "string", "minLength": 1},
    "careerAdvice": {"type": "string", "minLength": 1},
    "recommendations": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "reason", "dailyLife", "skillsNeeded"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "reason": {"type": "string"},
          "dailyLife": {"type": "string"},
          "skillsNeeded": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// AnalysisGateway asks the Gemini generateContent API to interpret a score vector
type AnalysisGateway struct {
	config  *config.AIConfig
	client  *http.Client
	catalog *catalog.Catalog
	schema  *gojsonschema.Schema
	logger  *zap.Logger
}

// NewAnalysisGateway creates a gateway. timeout bounds each call.
func NewAnalysisGateway(cfg *config.AIConfig, cat *catalog.Catalog, timeout time.Duration, logger *zap.Logger) (*AnalysisGateway, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisSchema))
	if err != nil {
		return nil, fmt.Errorf("compile analysis schema: %w", err)
	}
	return &AnalysisGateway{
		config:  cfg,
		client:  &http.Client{Timeout: timeout},
		catalog: cat,
		schema:  schema,
		logger:  logger,
	}, nil
}

// Analyze returns a fully validated result or an *apperrors.AnalysisError.
func (g *AnalysisGateway) Analyze(ctx context.Context, scores model.ScoreVector) (*model.AnalysisResult, error) {
	start := time.Now()
	result, err := g.analyze(ctx, scores.Clone())
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		g.logger.Warn("analysis request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}
	metrics.AnalysisRequests.WithLabelValues("ok").Inc()
	return result, nil
}

func (g *AnalysisGateway) analyze(ctx context.Context, scores model.ScoreVector) (*model.AnalysisResult, error) {
	text, err := g.callGemini(ctx, g.buildPrompt(scores))
	if err != nil {
		return nil, err
	}
	return g.parseResult(text)
}

// callGemini makes a request to the Gemini API and returns the first candidate text
func (g *AnalysisGateway) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewMalformed("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.ModelEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", apperrors.NewUnavailable(g.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, g.redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewBadStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(ctx, g.redact(err))
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", apperrors.NewMalformed("decode service envelope", err)
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", apperrors.NewMalformed("empty response from Gemini", nil)
}

// redact strips the API key from transport errors before they are wrapped or logged.
func (g *AnalysisGateway) redact(err error) error {
	if g.config.APIKey == "" || !strings.Contains(err.Error(), g.config.APIKey) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), g.config.APIKey, "[REDACTED]"), err: err}
}

// redactedError keeps the original chain for errors.Is/As but never prints it.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewTimeout(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewTimeout(err)
	}
	return apperrors.NewUnavailable(err)
}

// parseResult repairs, schema-checks and decodes the model text.
func (g *AnalysisGateway) parseResult(text string) (*model.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewMalformed("empty analysis text", nil)
	}
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, apperrors.NewMalformed("analysis text is not JSON", err)
	}

	res, err := g.schema.Validate(gojsonschema.NewStringLoader(repaired))
	if err != nil {
		return nil, apperrors.NewMalformed("analysis text is not JSON", err)
	}
	if !res.Valid() {
		details := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		return nil, apperrors.NewMalformed("response failed schema: "+strings.Join(details, "; "), nil)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, apperrors.NewMalformed("decode analysis", err)
	}
	if err := normalizeResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// normalizeResult upper-cases the code and checks it names two distinct
// categories. A topType given as a letter or in another case is resolved.
func normalizeResult(r *model.AnalysisResult) error {
	code := strings.ToUpper(strings.TrimSpace(r.TopTwoCode))
	if len(code) != 2 || code[0] == code[1] {
		return apperrors.NewInvalidCode(r.TopTwoCode)
	}
	for _, letter := range code {
		if _, ok := model.CategoryFromLetter(string(letter)); !ok {
			return apperrors.NewInvalidCode(r.TopTwoCode)
		}
	}
	r.TopTwoCode = code

	top := model.Category(strings.TrimSpace(string(r.TopType)))
	if !top.Valid() {
		resolved, ok := resolveCategory(string(top))
		if !ok {
			return apperrors.NewMalformed(fmt.Sprintf("unknown topType %q", r.TopType), nil)
		}
		top = resolved
	}
	r.TopType = top
	return nil
}

func resolveCategory(s string) (model.Category, bool) {
	if len(s) == 1 {
		return model.CategoryFromLetter(s)
	}
	for _, c := range model.Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

func (g *AnalysisGateway) buildPrompt(scores model.ScoreVector) string {
	var b strings.Builder
	for _, c := range model.Categories {
		fmt.Fprintf(&b, "- %s: %.2f\n", g.catalog.Info(c).Label, scores[c])
	}
	language := g.config.Language
	if language == "" {
		language = "Korean"
	}

	return fmt.Sprintf(`You are a professional career counselor using the Holland (RIASEC) interest model.
A user completed a 30-item survey answered on a 1-5 scale. Mean score per type:
%s
Interpret the profile and return ONLY valid JSON matching this schema:
{
  "topType": one of "Realistic", "Investigative", "Artistic", "Social", "Enterprising", "Conventional",
  "topTwoCode": two letters naming the two strongest types, e.g. "SA",
  "summary": "short description of the user's tendencies",
  "recommendations": [
    {
      "title": "occupation",
      "reason": "why it fits",
      "dailyLife": "what a typical day looks like",
      "skillsNeeded": ["skill1", "skill2"]
    }
  ],
  "careerAdvice": "practical advice for the next steps"
}

Recommend exactly 3 occupations. Write every text value in %s.`, b.String(), language)
}
