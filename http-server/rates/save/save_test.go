package save

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"quote-calc/internal/storage"
)

type MockRateSaver struct {
	mock.Mock
}

func (m *MockRateSaver) SaveRates(ctx context.Context, rates []storage.RateEntry) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func doRequest(saver RateSaver, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/admin/rates", strings.NewReader(body))
	rr := httptest.NewRecorder()
	SaveRates(slog.Default(), saver).ServeHTTP(rr, req)
	return rr
}

func TestSaveRates_Success(t *testing.T) {
	saver := new(MockRateSaver)
	saver.On("SaveRates", mock.Anything, []storage.RateEntry{
		{Role: "UI Designer", MonthlyRate: 4000},
		{Role: "Volunteer", MonthlyRate: 0},
	}).Return(nil)

	rr := doRequest(saver, `[
		{"role": " UI Designer ", "monthly_rate": 4000, "discount": 30},
		{"role": "Volunteer", "monthly_rate": 0}
	]`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "success", "saved": 2}`, rr.Body.String())
	saver.AssertExpectations(t)
}

func TestSaveRates_Invalid(t *testing.T) {
	cases := map[string]string{
		"json":      `{`,
		"empty":     `[{"role": " ", "monthly_rate": 1}]`,
		"negative":  `[{"role": "QA", "monthly_rate": -1}]`,
		"duplicate": `[{"role": "QA", "monthly_rate": 1}, {"role": "QA", "monthly_rate": 2}]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			saver := new(MockRateSaver)

			rr := doRequest(saver, body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			saver.AssertNotCalled(t, "SaveRates")
		})
	}
}

func TestSaveRates_StorageError(t *testing.T) {
	saver := new(MockRateSaver)
	saver.On("SaveRates", mock.Anything, mock.Anything).Return(assert.AnError)

	rr := doRequest(saver, `[{"role": "QA", "monthly_rate": 1}]`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal server error")
}
