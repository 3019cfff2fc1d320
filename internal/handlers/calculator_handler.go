package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "lendana/internal/errors"
	"lendana/internal/loan"
)

// previewMonths is how many schedule entries the calculator returns.
const previewMonths = 12

// CalculatorHandler exposes the amortization engine without requiring an
// account: prospective borrowers can price a loan before registering.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new CalculatorHandler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// CalculateRequest represents an EMI calculation payload
type CalculateRequest struct {
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" binding:"gte=0"`
	TermMonths   int     `json:"term_months" binding:"required,gt=0"`
}

// CalculateResponse represents the computed loan figures
type CalculateResponse struct {
	Installment   float64              `json:"installment"`
	TotalInterest float64              `json:"total_interest"`
	TotalPayment  float64              `json:"total_payment"`
	Schedule      []loan.ScheduleEntry `json:"schedule"`
}

// Calculate computes installment, totals, and a first-year schedule preview
// @Summary     EMI calculator
// @Description Compute the monthly installment, total interest, and the first twelve schedule entries
// @Tags        calculator
// @Accept      json
// @Produce     json
// @Param       request body CalculateRequest true "Loan parameters"
// @Success     200 {object} CalculateResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /calculator [post]
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installment, err := loan.ComputeInstallment(req.Amount, req.InterestRate, req.TermMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}
	totalInterest, err := loan.ComputeTotalInterest(req.Amount, req.InterestRate, req.TermMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}
	schedule, err := loan.GenerateSchedule(req.Amount, req.InterestRate, req.TermMonths, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if len(schedule) > previewMonths {
		schedule = schedule[:previewMonths]
	}

	c.JSON(http.StatusOK, CalculateResponse{
		Installment:   installment,
		TotalInterest: totalInterest,
		TotalPayment:  round2(req.Amount + totalInterest),
		Schedule:      schedule,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
