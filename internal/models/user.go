package models

import (
	"time"

	"lendana/internal/loan"
)

// EmploymentStatus describes how the borrower earns income.
type EmploymentStatus string

const (
	EmploymentStatusEmployed     EmploymentStatus = "employed"
	EmploymentStatusSelfEmployed EmploymentStatus = "self_employed"
	EmploymentStatusUnemployed   EmploymentStatus = "unemployed"
	EmploymentStatusRetired      EmploymentStatus = "retired"
	EmploymentStatusStudent      EmploymentStatus = "student"
)

// User is an account holder together with the borrower profile captured at
// registration. The profile fields feed the underwriting engine whenever
// the user applies for a loan.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Borrower profile
	AnnualIncome        float64          `gorm:"not null;default:0" json:"annual_income"`
	EmploymentStatus    EmploymentStatus `json:"employment_status"`
	EmploymentStartDate *time.Time       `json:"employment_start_date,omitempty"`
	CreditScore         int              `gorm:"not null" json:"credit_score"`
	DateOfBirth         *time.Time       `json:"date_of_birth,omitempty"`
	ExistingMonthlyDebt float64          `gorm:"not null;default:0" json:"existing_monthly_debt"`

	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Loans []Loan `gorm:"foreignKey:UserID" json:"loans,omitempty"`
}

// BorrowerProfile converts the stored user into the snapshot the
// underwriting engine evaluates.
func (u *User) BorrowerProfile() loan.BorrowerProfile {
	return loan.BorrowerProfile{
		AnnualIncome:        u.AnnualIncome,
		CreditScore:         u.CreditScore,
		DateOfBirth:         u.DateOfBirth,
		EmploymentStartDate: u.EmploymentStartDate,
		ExistingMonthlyDebt: u.ExistingMonthlyDebt,
	}
}
