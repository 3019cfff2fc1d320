package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"lendana/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a qualified borrower profile: income
// and credit score comfortably above every catalog threshold, employed for
// a decade, no existing debt.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a qualified borrower with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	dob := time.Now().AddDate(-35, 0, 0)
	employedSince := time.Now().AddDate(-10, 0, 0)
	return CreateTestBorrower(t, db, email, models.User{
		AnnualIncome:        1200000,
		EmploymentStatus:    models.EmploymentStatusEmployed,
		EmploymentStartDate: &employedSince,
		CreditScore:         760,
		DateOfBirth:         &dob,
		ExistingMonthlyDebt: 0,
	})
}

// CreateTestBorrower creates a user with the given borrower profile fields.
// Credentials are filled in; profile fields come from the template.
func CreateTestBorrower(t *testing.T, db *gorm.DB, email string, template models.User) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &template
	user.Username = fmt.Sprintf("user%d", nextID())
	user.Email = email
	user.Password = string(hash)
	user.IsActive = true
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestLoan creates a loan application with the given status.
func CreateTestLoan(t *testing.T, db *gorm.DB, userID uint, status models.LoanStatus) *models.Loan {
	t.Helper()

	application := &models.Loan{
		UserID:       userID,
		Amount:       500000,
		InterestRate: 10.5,
		TermMonths:   24,
		Type:         "personal",
		Status:       status,
	}
	if err := db.Create(application).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return application
}
