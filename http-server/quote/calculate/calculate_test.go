package calculate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"quote-calc/internal/service/quote"
)

const fixture = `{
	"rates": [
		{"role": "UI Designer", "monthly_rate": 4000},
		{"role": "Frontend Developer", "monthly_rate": 5000},
		{"role": "Backend Developer", "monthly_rate": 5000},
		{"role": "QA Engineer", "monthly_rate": 4000},
		{"role": "Project Manager", "monthly_rate": 5000}
	],
	"modules": [
		{"id": "auth", "name": "Authentication", "design_days": 3, "frontend_days": 5, "backend_days": 8,
		 "design_performers": ["UI Designer"], "development_performers": ["Frontend Developer", "Backend Developer"], "is_enabled": true},
		{"id": "catalog", "name": "Product catalog", "design_days": 4, "frontend_days": 9, "backend_days": 7,
		 "design_performers": ["UI Designer"], "development_performers": ["Frontend Developer", "Backend Developer"], "is_enabled": true},
		{"id": "reports", "name": "Reports", "design_days": 2, "frontend_days": 3, "backend_days": 3,
		 "design_performers": ["UI Designer"], "development_performers": ["Frontend Developer", "Backend Developer", "QA Engineer"], "is_enabled": false}
	],
	"discount_percentage": 10
	%s
}`

func doRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := CalculateQuote(slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/quote/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func TestCalculateQuote_FullyParallel(t *testing.T) {
	rr := doRequest(t, strings.Replace(fixture, "%s", "", 1))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp quote.Quote
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))

	assert.Equal(t, 7.0, resp.Result.DesignDays)
	assert.Equal(t, 15.0, resp.Result.DevelopmentDays)
	assert.Equal(t, 15.0, resp.Result.TotalDays)
	assert.Equal(t, int64(1400), resp.Result.DesignCost)
	assert.Equal(t, int64(7250), resp.Result.DevelopmentCost)
	assert.Equal(t, int64(8650), resp.Result.TotalQuote)
	assert.Equal(t, int64(8650), resp.Result.ProductPrice)
	assert.Equal(t, int64(7785), resp.Result.FinalTotal)
	assert.Equal(t, 23000.0, resp.Result.MonthlyFee)
	assert.Equal(t, 1, resp.Result.TeamSizeMultiplier)
	assert.Len(t, resp.ModulePrices, 3)
}

func TestCalculateQuote_Sequential(t *testing.T) {
	rr := doRequest(t, strings.Replace(fixture, "%s", `, "overlap_days": 0`, 1))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp quote.Quote
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, 22.0, resp.Result.TotalDays)
	assert.Equal(t, 22.0, resp.Stats.TimelineDays)
}

func TestCalculateQuote_NullOverlap(t *testing.T) {
	rr := doRequest(t, strings.Replace(fixture, "%s", `, "overlap_days": null`, 1))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp quote.Quote
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, 15.0, resp.Result.TotalDays)
}

func TestCalculateQuote_InvalidJSON(t *testing.T) {
	rr := doRequest(t, `{`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid JSON")
}

func TestCalculateQuote_InvalidInput(t *testing.T) {
	cases := map[string]string{
		"discount":      `{"discount_percentage": 120}`,
		"overlap":       `{"overlap_days": -1}`,
		"rate":          `{"rates": [{"role": "QA", "monthly_rate": -5}]}`,
		"rate discount": `{"rates": [{"role": "QA", "monthly_rate": 5, "discount": 101}]}`,
		"days":          `{"modules": [{"id": "a", "design_days": -2}]}`,
		"no id":         `{"modules": [{"name": "A"}]}`,
		"duplicate":     `{"modules": [{"id": "a"}, {"id": "a"}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := doRequest(t, body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCalculateQuote_Empty(t *testing.T) {
	rr := doRequest(t, `{}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp quote.Quote
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, quote.QuoteResult{TeamSizeMultiplier: 1}, resp.Result)
	assert.Empty(t, resp.ModulePrices)
}
