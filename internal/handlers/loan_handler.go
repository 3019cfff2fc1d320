package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lendana/internal/errors"
	"lendana/internal/loan"
	"lendana/internal/pagination"
	"lendana/internal/services"
)

// LoanHandler handles loan application requests
type LoanHandler struct {
	loanService services.LoanServicer
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService services.LoanServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ApplyRequest represents a loan application payload. Unknown loan types
// are accepted and resolve to the personal-loan criteria, so the type field
// is free-form here.
type ApplyRequest struct {
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" binding:"gte=0"`
	TermMonths   int     `json:"term_months" binding:"required,gt=0"`
	LoanType     string  `json:"loan_type" binding:"required"`
}

// Apply submits a loan application for underwriting
// @Summary     Apply for a loan
// @Description Evaluate a loan application; failing eligibility checks auto-rejects it with reasons
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ApplyRequest true "Loan application"
// @Success     201 {object} models.Loan "Application recorded with its decision"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /loans [post]
func (h *LoanHandler) Apply(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	application, decision, err := h.loanService.Apply(userID, req.Amount, req.InterestRate, req.TermMonths, loan.Type(req.LoanType))
	if err != nil {
		respondWithError(c, err)
		return
	}

	reasons := decision.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	c.JSON(http.StatusCreated, gin.H{
		"loan": application,
		"decision": gin.H{
			"status":  decision.Status,
			"reasons": reasons,
		},
	})
}

// GetLoans lists the caller's loan applications
// @Summary     List loans
// @Description Get the authenticated user's loan applications, newest first
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Loan]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /loans [get]
func (h *LoanHandler) GetLoans(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loans, err := h.loanService.GetUserLoans(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loans)
}

// GetLoan returns one loan application
// @Summary     Get loan
// @Description Get a single loan application by ID
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Loan ID"
// @Success     200 {object} models.Loan
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	application, err := h.loanService.GetLoanByID(userID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": application})
}

// GetSchedule returns the payment schedule of a loan
// @Summary     Get payment schedule
// @Description Get the amortization schedule for an approved loan; non-approved loans have none
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Loan ID"
// @Success     200 {array} models.Installment
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /loans/{id}/schedule [get]
func (h *LoanHandler) GetSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	installments, err := h.loanService.GetSchedule(userID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installments": installments})
}

// GetSummary returns the caller's dashboard aggregates
// @Summary     Loan summary
// @Description Counts by status plus total approved amount
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.LoanSummary
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /loans/summary [get]
func (h *LoanHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.loanService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
