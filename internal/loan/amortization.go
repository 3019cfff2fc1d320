package loan

import (
	"fmt"
	"math"
	"time"

	apperrors "lendana/internal/errors"
)

// Upper bounds on loan terms. Beyond these the product makes no sense and
// the compounding factor (1+r)^n approaches float64 overflow, which would
// turn the installment into Inf or NaN.
const (
	MaxPrincipal  = 1_000_000_000.0 // 1 billion
	MaxAnnualRate = 1000.0          // percent
	MaxTermMonths = 600             // 50 years
)

// ScheduleEntry is one row of an amortization schedule.
type ScheduleEntry struct {
	Number             int       `json:"number"`
	DueDate            time.Time `json:"due_date"`
	Amount             float64   `json:"amount"`
	Principal          float64   `json:"principal"`
	Interest           float64   `json:"interest"`
	RemainingPrincipal float64   `json:"remaining_principal"`
}

// round2 rounds to 2 decimal places, half away from zero. Every monetary
// value in this package goes through the same helper so that installment,
// schedule, and total-interest figures stay mutually consistent.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateTerms(principal, annualRate float64, termMonths int) error {
	if principal <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Principal must be positive")
	}
	if termMonths <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Term must be at least one month")
	}
	if annualRate < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Interest rate cannot be negative")
	}
	if principal > MaxPrincipal {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Principal exceeds the maximum of %.0f", MaxPrincipal))
	}
	if annualRate > MaxAnnualRate {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Interest rate exceeds the maximum of %.0f%%", MaxAnnualRate))
	}
	if termMonths > MaxTermMonths {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Term exceeds the maximum of %d months", MaxTermMonths))
	}
	return nil
}

// ComputeInstallment returns the fixed monthly installment (EMI) for an
// amortizing loan: P * r * (1+r)^n / ((1+r)^n - 1), where r is the monthly
// rate. A zero rate degenerates to straight principal division, since the
// formula would divide by zero.
func ComputeInstallment(principal, annualRate float64, termMonths int) (float64, error) {
	if err := validateTerms(principal, annualRate, termMonths); err != nil {
		return 0, err
	}

	if annualRate == 0 {
		return round2(principal / float64(termMonths)), nil
	}

	monthlyRate := annualRate / 12 / 100
	n := float64(termMonths)
	compounded := math.Pow(1+monthlyRate, n)
	installment := principal * monthlyRate * compounded / (compounded - 1)
	return round2(installment), nil
}

// GenerateSchedule produces the full amortization schedule: exactly
// termMonths entries, due every 30 days after startDate (a fixed 30-day
// month approximation, not calendar months). The last entry's principal
// component is forced to the exact outstanding balance and its amount
// recomputed, so the loan always amortizes to zero despite per-entry
// rounding.
func GenerateSchedule(principal, annualRate float64, termMonths int, startDate time.Time) ([]ScheduleEntry, error) {
	installment, err := ComputeInstallment(principal, annualRate, termMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := annualRate / 12 / 100
	remaining := principal
	schedule := make([]ScheduleEntry, 0, termMonths)

	for i := 1; i <= termMonths; i++ {
		interest := remaining * monthlyRate
		principalPart := installment - interest
		amount := installment

		if i == termMonths {
			principalPart = remaining
			amount = principalPart + interest
		}

		schedule = append(schedule, ScheduleEntry{
			Number:             i,
			DueDate:            startDate.AddDate(0, 0, 30*i),
			Amount:             round2(amount),
			Principal:          round2(principalPart),
			Interest:           round2(interest),
			RemainingPrincipal: round2(remaining - principalPart),
		})

		remaining -= principalPart
	}

	return schedule, nil
}

// ComputeTotalInterest returns the interest paid over the full term:
// installment * termMonths - principal.
func ComputeTotalInterest(principal, annualRate float64, termMonths int) (float64, error) {
	installment, err := ComputeInstallment(principal, annualRate, termMonths)
	if err != nil {
		return 0, err
	}
	return round2(installment*float64(termMonths) - principal), nil
}
