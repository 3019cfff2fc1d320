package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func calculatorRouter() *gin.Engine {
	router := gin.New()
	router.POST("/calculator", NewCalculatorHandler().Calculate)
	return router
}

func TestCalculatorHandler(t *testing.T) {
	router := calculatorRouter()

	t.Run("standard_loan", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/calculator", gin.H{
			"amount":        500000,
			"interest_rate": 10.5,
			"term_months":   24,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp CalculateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Installment != 23188.02 {
			t.Errorf("expected installment 23188.02, got %v", resp.Installment)
		}
		if resp.TotalInterest != 56512.48 {
			t.Errorf("expected total interest 56512.48, got %v", resp.TotalInterest)
		}
		if resp.TotalPayment != 556512.48 {
			t.Errorf("expected total payment 556512.48, got %v", resp.TotalPayment)
		}
		if len(resp.Schedule) != previewMonths {
			t.Errorf("expected %d preview entries, got %d", previewMonths, len(resp.Schedule))
		}
	})

	t.Run("short_loan_returns_full_schedule", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/calculator", gin.H{
			"amount":        1200,
			"interest_rate": 0,
			"term_months":   6,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp CalculateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Installment != 200 {
			t.Errorf("expected installment 200, got %v", resp.Installment)
		}
		if resp.TotalInterest != 0 {
			t.Errorf("expected zero interest, got %v", resp.TotalInterest)
		}
		if len(resp.Schedule) != 6 {
			t.Errorf("expected 6 entries, got %d", len(resp.Schedule))
		}
	})

	t.Run("missing_amount", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/calculator", gin.H{
			"interest_rate": 10.5,
			"term_months":   24,
		})
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("negative_rate", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/calculator", gin.H{
			"amount":        500000,
			"interest_rate": -1,
			"term_months":   24,
		})
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})
}
