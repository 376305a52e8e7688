package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careervision/internal/apperrors"
	"careervision/internal/catalog"
	"careervision/internal/config"
	"careervision/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validAnalysis = `{
  "topType": "Social",
  "topTwoCode": "SA",
  "summary": "You like helping people.",
  "recommendations": [
    {"title": "Counselor", "reason": "empathy", "dailyLife": "sessions", "skillsNeeded": ["listening"]},
    {"title": "Tutor", "reason": "explaining", "dailyLife": "classes", "skillsNeeded": ["patience"]},
    {"title": "Art therapist", "reason": "creative care", "dailyLife": "workshops", "skillsNeeded": ["art"]}
  ],
  "careerAdvice": "Volunteer at a community center."
}`

func geminiEnvelope(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

func sampleScores() model.ScoreVector {
	return model.ScoreVector{
		model.Realistic: 2, model.Investigative: 2.4, model.Artistic: 4.2,
		model.Social: 4.8, model.Enterprising: 3, model.Conventional: 1.6,
	}
}

func newTestGateway(t *testing.T, url string, timeout time.Duration) *AnalysisGateway {
	t.Helper()
	cfg := &config.AIConfig{APIKey: "test-key", BaseURL: url, Model: "test-model", Language: "English"}
	g, err := NewAnalysisGateway(cfg, catalog.Default(), timeout, zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestAnalysisGateway_Success(t *testing.T) {
	var gotPath, gotKey, gotQuery, gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotPrompt = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiEnvelope(validAnalysis)))
	}))
	defer server.Close()

	scores := sampleScores()
	before := scores.Clone()
	result, err := newTestGateway(t, server.URL, time.Second).Analyze(context.Background(), scores)

	require.NoError(t, err)
	assert.Equal(t, model.Social, result.TopType)
	assert.Equal(t, "SA", result.TopTwoCode)
	assert.Len(t, result.Recommendations, 3)
	assert.Equal(t, []string{"listening"}, result.Recommendations[0].SkillsNeeded)

	assert.Equal(t, "/test-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Empty(t, gotQuery)
	assert.Contains(t, gotPrompt, "Social (S): 4.80")
	assert.Contains(t, gotPrompt, "English")
	assert.Equal(t, before, scores)
}

func TestAnalysisGateway_Failures(t *testing.T) {
	missingRecs := `{"topType":"Social","topTwoCode":"SA","summary":"s","careerAdvice":"a"}`
	emptyRecs := `{"topType":"Social","topTwoCode":"SA","summary":"s","recommendations":[],"careerAdvice":"a"}`
	badCode := strings.Replace(validAnalysis, `"SA"`, `"SX"`, 1)
	repeatedCode := strings.Replace(validAnalysis, `"SA"`, `"SS"`, 1)
	longCode := strings.Replace(validAnalysis, `"SA"`, `"SAE"`, 1)
	badType := strings.Replace(validAnalysis, `"Social"`, `"Cosmic"`, 1)

	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.Code
	}{
		{"missing recommendations", 200, geminiEnvelope(missingRecs), apperrors.CodeAnalysisMalformed},
		{"empty recommendations", 200, geminiEnvelope(emptyRecs), apperrors.CodeAnalysisMalformed},
		{"unknown letter", 200, geminiEnvelope(badCode), apperrors.CodeAnalysisInvalidCode},
		{"repeated letter", 200, geminiEnvelope(repeatedCode), apperrors.CodeAnalysisInvalidCode},
		{"three letters", 200, geminiEnvelope(longCode), apperrors.CodeAnalysisMalformed},
		{"unknown top type", 200, geminiEnvelope(badType), apperrors.CodeAnalysisMalformed},
		{"no candidates", 200, `{"candidates":[]}`, apperrors.CodeAnalysisMalformed},
		{"envelope not json", 200, `<html>`, apperrors.CodeAnalysisMalformed},
		{"server error", 500, `{"error":"boom"}`, apperrors.CodeAnalysisBadStatus},
		{"rate limited", 429, `{}`, apperrors.CodeAnalysisBadStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			result, err := newTestGateway(t, server.URL, time.Second).Analyze(context.Background(), sampleScores())

			assert.Nil(t, result)
			assert.Equal(t, tt.want, apperrors.CodeOf(err), "err: %v", err)
		})
	}
}

func TestAnalysisGateway_RepairsNearJSON(t *testing.T) {
	nearJSON := strings.TrimSuffix(strings.TrimSpace(validAnalysis), "}") + `,}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiEnvelope(nearJSON)))
	}))
	defer server.Close()

	result, err := newTestGateway(t, server.URL, time.Second).Analyze(context.Background(), sampleScores())

	require.NoError(t, err)
	assert.Equal(t, "SA", result.TopTwoCode)
}

func TestAnalysisGateway_NormalizesCodeAndType(t *testing.T) {
	lower := strings.Replace(strings.Replace(validAnalysis, `"SA"`, `"sa"`, 1), `"Social"`, `"S"`, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiEnvelope(lower)))
	}))
	defer server.Close()

	result, err := newTestGateway(t, server.URL, time.Second).Analyze(context.Background(), sampleScores())

	require.NoError(t, err)
	assert.Equal(t, "SA", result.TopTwoCode)
	assert.Equal(t, model.Social, result.TopType)
}

func TestAnalysisGateway_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	_, err := newTestGateway(t, server.URL, 50*time.Millisecond).Analyze(context.Background(), sampleScores())

	assert.Equal(t, apperrors.CodeAnalysisTimeout, apperrors.CodeOf(err), "err: %v", err)
}

func TestAnalysisGateway_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestGateway(t, url, time.Second).Analyze(context.Background(), sampleScores())

	assert.Equal(t, apperrors.CodeAnalysisUnavailable, apperrors.CodeOf(err))
	assert.NotContains(t, err.Error(), "test-key")
}

func TestAnalysisGateway_RedactsKey(t *testing.T) {
	g := newTestGateway(t, "http://127.0.0.1:1", time.Second)
	cause := errors.New(`Post "http://127.0.0.1:1/m?key=test-key": connection refused`)

	err := apperrors.NewUnavailable(g.redact(cause))

	assert.NotContains(t, err.Error(), "test-key")
	assert.Contains(t, err.Error(), "[REDACTED]")
	assert.ErrorIs(t, err, cause)
	assert.Same(t, cause, g.redact(cause).(interface{ Unwrap() error }).Unwrap())

	plain := errors.New("connection refused")
	assert.Same(t, plain, g.redact(plain))
}

func TestOfflineAnalyzer(t *testing.T) {
	a := NewOfflineAnalyzer(catalog.Default())

	result, err := a.Analyze(context.Background(), sampleScores())

	require.NoError(t, err)
	assert.Equal(t, model.Social, result.TopType)
	assert.Equal(t, "SA", result.TopTwoCode)
	assert.Len(t, result.Recommendations, 3)
	assert.Contains(t, result.Summary, "Social (S)")
	require.NoError(t, normalizeResult(result))
}
