// Package loan implements the amortization and underwriting core of the
// Lendana API. Everything in this package is a pure, deterministic function
// of its inputs plus the immutable criteria catalog and an injected clock,
// so it is safe to call concurrently without synchronization.
package loan

import "time"

// Type identifies a loan product.
type Type string

const (
	TypePersonal  Type = "personal"
	TypeHome      Type = "home"
	TypeCar       Type = "car"
	TypeEducation Type = "education"
	TypeBusiness  Type = "business"
)

// BorrowerProfile is an immutable snapshot of the applicant at evaluation
// time. DateOfBirth and EmploymentStartDate may be nil; the corresponding
// derived metrics are then zero, which fails the related checks.
type BorrowerProfile struct {
	AnnualIncome        float64
	CreditScore         int
	DateOfBirth         *time.Time
	EmploymentStartDate *time.Time
	ExistingMonthlyDebt float64
}

// Request describes the loan being applied for.
type Request struct {
	Principal  float64
	AnnualRate float64 // annual interest rate in percent
	TermMonths int
	Type       Type
}

// Status is the outcome of an underwriting evaluation. The engine never
// approves; approval is a manual decision outside this package.
type Status string

const (
	StatusAutoRejected  Status = "auto_rejected"
	StatusPendingReview Status = "pending_review"
)

// Metrics holds the derived borrower figures the checks were evaluated on.
type Metrics struct {
	Age             int
	EmploymentYears float64
	DTIRatio        float64 // percent; 100 when monthly income is zero
	LoanToIncome    float64 // +Inf when annual income is zero
	AgeAtMaturity   float64
}

// Decision is the result of evaluating a request against the criteria.
// Reasons is empty exactly when Status is StatusPendingReview.
type Decision struct {
	Status  Status
	Reasons []string
	Metrics Metrics
}
