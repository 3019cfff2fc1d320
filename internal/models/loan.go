package models

import (
	"time"

	"lendana/internal/loan"
)

// LoanStatus is the lifecycle state of an application. The underwriting
// engine only ever produces pending or rejected; approved is set by manual
// review outside the request path.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
)

// Loan is a persisted loan application: the request snapshot plus the
// underwriting outcome.
type Loan struct {
	Base
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	Amount          float64    `gorm:"not null" json:"amount"`
	InterestRate    float64    `gorm:"not null" json:"interest_rate"`
	TermMonths      int        `gorm:"not null" json:"term_months"`
	Type            loan.Type  `gorm:"not null" json:"type"`
	Status          LoanStatus `gorm:"not null;default:'pending'" json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`

	Installments []Installment `gorm:"foreignKey:LoanID" json:"installments,omitempty"`
}
