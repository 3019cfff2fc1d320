package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "lendana/internal/errors"
	"lendana/internal/loan"
	"lendana/internal/models"
	"lendana/internal/pagination"
	"lendana/internal/services"
	"lendana/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectUserID simulates the auth middleware for handler tests.
func injectUserID(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return result
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if w.Code != wantStatus {
		t.Errorf("expected status %d, got %d: %s", wantStatus, w.Code, w.Body.String())
	}
	body := parseJSON(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got %v", body)
	}
	if errObj["code"] != wantCode {
		t.Errorf("expected error code %s, got %v", wantCode, errObj["code"])
	}
}

// mockLoanService implements services.LoanServicer with overridable functions.
type mockLoanService struct {
	applyFn        func(userID uint, principal, annualRate float64, termMonths int, loanType loan.Type) (*models.Loan, *loan.Decision, error)
	getUserLoansFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error)
	getLoanByIDFn  func(userID, loanID uint) (*models.Loan, error)
	getScheduleFn  func(userID, loanID uint) ([]models.Installment, error)
	getSummaryFn   func(userID uint) (*services.LoanSummary, error)
}

func (m *mockLoanService) Apply(userID uint, principal, annualRate float64, termMonths int, loanType loan.Type) (*models.Loan, *loan.Decision, error) {
	return m.applyFn(userID, principal, annualRate, termMonths, loanType)
}

func (m *mockLoanService) GetUserLoans(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error) {
	return m.getUserLoansFn(userID, page)
}

func (m *mockLoanService) GetLoanByID(userID, loanID uint) (*models.Loan, error) {
	return m.getLoanByIDFn(userID, loanID)
}

func (m *mockLoanService) GetSchedule(userID, loanID uint) ([]models.Installment, error) {
	return m.getScheduleFn(userID, loanID)
}

func (m *mockLoanService) GetSummary(userID uint) (*services.LoanSummary, error) {
	return m.getSummaryFn(userID)
}

func loanRouter(mock *mockLoanService, userID uint) *gin.Engine {
	handler := NewLoanHandler(mock)
	router := gin.New()
	group := router.Group("/loans", injectUserID(userID))
	group.POST("", handler.Apply)
	group.GET("", handler.GetLoans)
	group.GET("/summary", handler.GetSummary)
	group.GET("/:id", handler.GetLoan)
	group.GET("/:id/schedule", handler.GetSchedule)
	return router
}

func TestLoanHandlerApply(t *testing.T) {
	t.Run("pending_application", func(t *testing.T) {
		mock := &mockLoanService{
			applyFn: func(userID uint, principal, annualRate float64, termMonths int, loanType loan.Type) (*models.Loan, *loan.Decision, error) {
				if userID != 7 {
					t.Errorf("expected user 7, got %d", userID)
				}
				application := &models.Loan{
					UserID:       userID,
					Amount:       principal,
					InterestRate: annualRate,
					TermMonths:   termMonths,
					Type:         loanType,
					Status:       models.LoanStatusPending,
				}
				application.ID = 42
				return application, &loan.Decision{Status: loan.StatusPendingReview}, nil
			},
		}
		router := loanRouter(mock, 7)

		w := doRequest(t, router, http.MethodPost, "/loans", gin.H{
			"amount":        500000,
			"interest_rate": 10.5,
			"term_months":   24,
			"loan_type":     "personal",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		body := parseJSON(t, w)
		decision, ok := body["decision"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected decision object, got %v", body)
		}
		if decision["status"] != "pending_review" {
			t.Errorf("expected decision status pending_review, got %v", decision["status"])
		}
		reasons, ok := decision["reasons"].([]interface{})
		if !ok {
			t.Fatalf("expected reasons array, got %v", decision["reasons"])
		}
		if len(reasons) != 0 {
			t.Errorf("expected empty reasons, got %v", reasons)
		}
	})

	t.Run("rejected_application_carries_reasons", func(t *testing.T) {
		mock := &mockLoanService{
			applyFn: func(userID uint, principal, annualRate float64, termMonths int, loanType loan.Type) (*models.Loan, *loan.Decision, error) {
				application := &models.Loan{Status: models.LoanStatusRejected}
				return application, &loan.Decision{
					Status:  loan.StatusAutoRejected,
					Reasons: []string{"Minimum annual income required: 300000"},
				}, nil
			},
		}
		router := loanRouter(mock, 7)

		w := doRequest(t, router, http.MethodPost, "/loans", gin.H{
			"amount":        500000,
			"interest_rate": 10.5,
			"term_months":   24,
			"loan_type":     "personal",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		body := parseJSON(t, w)
		decision := body["decision"].(map[string]interface{})
		if decision["status"] != "auto_rejected" {
			t.Errorf("expected decision status auto_rejected, got %v", decision["status"])
		}
		reasons := decision["reasons"].([]interface{})
		if len(reasons) != 1 {
			t.Errorf("expected 1 reason, got %v", reasons)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		router := loanRouter(&mockLoanService{}, 7)
		w := doRequest(t, router, http.MethodPost, "/loans", gin.H{"amount": 500000})
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		router := loanRouter(&mockLoanService{}, 7)
		w := doRequest(t, router, http.MethodPost, "/loans", gin.H{
			"amount":      -1,
			"term_months": 24,
			"loan_type":   "personal",
		})
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("service_error_propagates", func(t *testing.T) {
		mock := &mockLoanService{
			applyFn: func(uint, float64, float64, int, loan.Type) (*models.Loan, *loan.Decision, error) {
				return nil, nil, apperrors.ErrUserNotFound
			},
		}
		router := loanRouter(mock, 7)
		w := doRequest(t, router, http.MethodPost, "/loans", gin.H{
			"amount":        500000,
			"interest_rate": 10.5,
			"term_months":   24,
			"loan_type":     "personal",
		})
		assertErrorCode(t, w, http.StatusNotFound, "USER_NOT_FOUND")
	})
}

func TestLoanHandlerGetLoan(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := &mockLoanService{
			getLoanByIDFn: func(userID, loanID uint) (*models.Loan, error) {
				if loanID != 42 {
					t.Errorf("expected loan 42, got %d", loanID)
				}
				application := &models.Loan{UserID: userID, Status: models.LoanStatusPending}
				application.ID = loanID
				return application, nil
			},
		}
		router := loanRouter(mock, 7)
		w := doRequest(t, router, http.MethodGet, "/loans/42", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("not_found", func(t *testing.T) {
		mock := &mockLoanService{
			getLoanByIDFn: func(userID, loanID uint) (*models.Loan, error) {
				return nil, apperrors.ErrLoanNotFound
			},
		}
		router := loanRouter(mock, 7)
		w := doRequest(t, router, http.MethodGet, "/loans/42", nil)
		assertErrorCode(t, w, http.StatusNotFound, "LOAN_NOT_FOUND")
	})

	t.Run("bad_id", func(t *testing.T) {
		router := loanRouter(&mockLoanService{}, 7)
		w := doRequest(t, router, http.MethodGet, "/loans/abc", nil)
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func TestLoanHandlerGetSchedule(t *testing.T) {
	mock := &mockLoanService{
		getScheduleFn: func(userID, loanID uint) ([]models.Installment, error) {
			return []models.Installment{
				{LoanID: loanID, Number: 1, Amount: 23188.02, Status: models.InstallmentStatusPending},
			}, nil
		},
	}
	router := loanRouter(mock, 7)
	w := doRequest(t, router, http.MethodGet, "/loans/42/schedule", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseJSON(t, w)
	installments, ok := body["installments"].([]interface{})
	if !ok {
		t.Fatalf("expected installments array, got %v", body)
	}
	if len(installments) != 1 {
		t.Errorf("expected 1 installment, got %d", len(installments))
	}
}

func TestLoanHandlerGetSummary(t *testing.T) {
	mock := &mockLoanService{
		getSummaryFn: func(userID uint) (*services.LoanSummary, error) {
			return &services.LoanSummary{TotalLoans: 4, ApprovedLoans: 1, PendingLoans: 1, RejectedLoans: 2, TotalApprovedAmount: 500000}, nil
		},
	}
	router := loanRouter(mock, 7)
	w := doRequest(t, router, http.MethodGet, "/loans/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseJSON(t, w)
	summary, ok := body["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected summary object, got %v", body)
	}
	if summary["total_loans"] != float64(4) {
		t.Errorf("expected 4 total loans, got %v", summary["total_loans"])
	}
}

func TestLoanHandlerGetLoans(t *testing.T) {
	mock := &mockLoanService{
		getUserLoansFn: func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error) {
			if page.Page != 2 || page.PageSize != 5 {
				t.Errorf("expected page 2 size 5, got %+v", page)
			}
			resp := pagination.NewPageResponse([]models.Loan{}, page.Page, page.PageSize, 0)
			return &resp, nil
		},
	}
	router := loanRouter(mock, 7)
	w := doRequest(t, router, http.MethodGet, "/loans?page=2&page_size=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}
