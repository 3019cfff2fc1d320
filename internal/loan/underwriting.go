package loan

import (
	"fmt"
	"math"
	"time"
)

// Underwriter evaluates loan requests against the criteria catalog.
// The clock is injectable so age and employment tenure are testable.
type Underwriter struct {
	catalog *Catalog
	now     func() time.Time
}

// NewUnderwriter creates an Underwriter using the wall clock.
func NewUnderwriter(catalog *Catalog) *Underwriter {
	return NewUnderwriterWithClock(catalog, time.Now)
}

// NewUnderwriterWithClock creates an Underwriter with a custom clock.
func NewUnderwriterWithClock(catalog *Catalog, now func() time.Time) *Underwriter {
	return &Underwriter{catalog: catalog, now: now}
}

// Evaluate runs the eight eligibility checks for the request. Every check
// runs regardless of earlier failures, so a single evaluation surfaces all
// simultaneous problems; the decision is auto-rejected exactly when at
// least one reason accumulated. Malformed requests (non-positive principal
// or term, negative rate) return an error instead of a rejection.
func (u *Underwriter) Evaluate(profile BorrowerProfile, req Request) (*Decision, error) {
	installment, err := ComputeInstallment(req.Principal, req.AnnualRate, req.TermMonths)
	if err != nil {
		return nil, err
	}

	now := u.now()
	metrics := Metrics{
		Age:             ageAt(profile.DateOfBirth, now),
		EmploymentYears: employmentYearsAt(profile.EmploymentStartDate, now),
		DTIRatio:        dtiRatio(profile, installment),
	}
	metrics.AgeAtMaturity = float64(metrics.Age) + float64(req.TermMonths)/12
	if profile.AnnualIncome > 0 {
		metrics.LoanToIncome = req.Principal / profile.AnnualIncome
	} else {
		// Sentinel: no income means the loan-to-income check can never pass.
		metrics.LoanToIncome = math.Inf(1)
	}

	criteria := u.catalog.Resolve(req.Type)
	var reasons []string

	if metrics.Age < criteria.MinAge {
		reasons = append(reasons, fmt.Sprintf("Minimum age required: %d years", criteria.MinAge))
	}
	if metrics.AgeAtMaturity > float64(criteria.MaxAgeAtMaturity) {
		reasons = append(reasons, fmt.Sprintf("Maximum age at loan maturity: %d years", criteria.MaxAgeAtMaturity))
	}
	if profile.AnnualIncome < criteria.MinAnnualIncome {
		reasons = append(reasons, fmt.Sprintf("Minimum annual income required: %.0f", criteria.MinAnnualIncome))
	}
	if metrics.EmploymentYears < criteria.MinEmploymentYears {
		reasons = append(reasons, fmt.Sprintf("Minimum employment years required: %g", criteria.MinEmploymentYears))
	}
	if profile.CreditScore < criteria.MinCreditScore {
		reasons = append(reasons, fmt.Sprintf("Minimum credit score required: %d", criteria.MinCreditScore))
	}
	if metrics.DTIRatio > criteria.MaxDTIRatio {
		reasons = append(reasons, fmt.Sprintf("Maximum debt-to-income ratio: %g%% (your DTI: %.1f%%)", criteria.MaxDTIRatio, metrics.DTIRatio))
	}
	if req.AnnualRate < criteria.MinInterestRate {
		reasons = append(reasons, fmt.Sprintf("Minimum interest rate: %.1f%%", criteria.MinInterestRate))
	}
	if metrics.LoanToIncome > criteria.MaxLoanToIncome {
		reasons = append(reasons, fmt.Sprintf("Maximum loan-to-income ratio: %gx", criteria.MaxLoanToIncome))
	}

	decision := &Decision{
		Status:  StatusPendingReview,
		Reasons: reasons,
		Metrics: metrics,
	}
	if len(reasons) > 0 {
		decision.Status = StatusAutoRejected
	}
	return decision, nil
}

// ageAt returns whole years since dob, adjusted for whether the birthday
// has occurred yet this year. Zero when dob is unknown.
func ageAt(dob *time.Time, now time.Time) int {
	if dob == nil {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// employmentYearsAt returns tenure in years (days / 365.25) rounded to one
// decimal. Zero when the start date is unknown.
func employmentYearsAt(start *time.Time, now time.Time) float64 {
	if start == nil {
		return 0
	}
	years := now.Sub(*start).Hours() / 24 / 365.25
	return math.Round(years*10) / 10
}

// dtiRatio returns total monthly obligations (existing debt plus the
// candidate installment) as a percentage of monthly income. With zero
// income it returns exactly 100, the worst-case sentinel, rather than
// dividing by zero.
func dtiRatio(profile BorrowerProfile, installment float64) float64 {
	monthlyIncome := profile.AnnualIncome / 12
	if monthlyIncome == 0 {
		return 100
	}
	return (profile.ExistingMonthlyDebt + installment) / monthlyIncome * 100
}
