package models

import "time"

// InstallmentStatus tracks whether a scheduled payment has been made.
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// Installment is one persisted row of a loan's amortization schedule.
// Amount always equals Principal + Interest within rounding, and the last
// installment of a loan has RemainingPrincipal exactly zero.
type Installment struct {
	Base
	LoanID             uint              `gorm:"not null;index" json:"loan_id"`
	Number             int               `gorm:"not null" json:"number"`
	DueDate            time.Time         `gorm:"not null" json:"due_date"`
	Amount             float64           `gorm:"not null" json:"amount"`
	Principal          float64           `gorm:"not null" json:"principal"`
	Interest           float64           `gorm:"not null" json:"interest"`
	RemainingPrincipal float64           `gorm:"not null" json:"remaining_principal"`
	Status             InstallmentStatus `gorm:"not null;default:'pending'" json:"status"`
	PaidAt             *time.Time        `json:"paid_at,omitempty"`
}
