package services

import (
	"time"

	"lendana/internal/loan"
	"lendana/internal/models"
	"lendana/internal/pagination"
)

// RegisterInput holds the fields captured at registration: credentials plus
// the borrower profile.
type RegisterInput struct {
	Username            string
	Email               string
	Password            string
	AnnualIncome        float64
	EmploymentStatus    models.EmploymentStatus
	EmploymentStartDate *time.Time
	CreditScore         int
	DateOfBirth         *time.Time
	ExistingMonthlyDebt float64
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(input RegisterInput) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// LoanSummary aggregates a user's applications for the dashboard.
type LoanSummary struct {
	TotalLoans          int64   `json:"total_loans"`
	PendingLoans        int64   `json:"pending_loans"`
	ApprovedLoans       int64   `json:"approved_loans"`
	RejectedLoans       int64   `json:"rejected_loans"`
	TotalApprovedAmount float64 `json:"total_approved_amount"`
}

// LoanServicer defines the contract for loan application business logic.
type LoanServicer interface {
	Apply(userID uint, principal, annualRate float64, termMonths int, loanType loan.Type) (*models.Loan, *loan.Decision, error)
	GetUserLoans(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error)
	GetLoanByID(userID, loanID uint) (*models.Loan, error)
	GetSchedule(userID, loanID uint) ([]models.Installment, error)
	GetSummary(userID uint) (*LoanSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
