package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "lendana/internal/errors"
	"lendana/internal/loan"
	"lendana/internal/models"
	"lendana/internal/pagination"
)

// loanService handles loan application business logic.
type loanService struct {
	db          *gorm.DB
	underwriter *loan.Underwriter
	audit       AuditServicer
}

// NewLoanService creates a new LoanServicer.
func NewLoanService(db *gorm.DB, underwriter *loan.Underwriter, audit AuditServicer) LoanServicer {
	return &loanService{db: db, underwriter: underwriter, audit: audit}
}

// Apply evaluates a loan request for the user and persists the application
// with the underwriting outcome. A failed eligibility check yields a
// rejected application with the accumulated reasons; it is not an error.
// Invalid request values (non-positive principal or term, negative rate)
// return an error and persist nothing.
func (s *loanService) Apply(userID uint, principal, annualRate float64, termMonths int, loanType loan.Type) (*models.Loan, *loan.Decision, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, nil, err
	}

	decision, err := s.underwriter.Evaluate(user.BorrowerProfile(), loan.Request{
		Principal:  principal,
		AnnualRate: annualRate,
		TermMonths: termMonths,
		Type:       loanType,
	})
	if err != nil {
		return nil, nil, err
	}

	application := &models.Loan{
		UserID:       userID,
		Amount:       principal,
		InterestRate: annualRate,
		TermMonths:   termMonths,
		Type:         loanType,
		Status:       models.LoanStatusPending,
	}
	if decision.Status == loan.StatusAutoRejected {
		application.Status = models.LoanStatusRejected
		application.RejectionReason = strings.Join(decision.Reasons, " | ")
	}

	if err := s.db.Create(application).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(userID, "loan.apply", "loan", application.ID, "", map[string]interface{}{
		"status":  string(application.Status),
		"type":    string(loanType),
		"amount":  principal,
		"reasons": len(decision.Reasons),
	})

	return application, decision, nil
}

// GetUserLoans returns the user's applications, newest first.
func (s *loanService) GetUserLoans(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error) {
	page.Defaults()

	base := s.db.Model(&models.Loan{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var loans []models.Loan
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(loans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetLoanByID returns a single application, owner-checked.
func (s *loanService) GetLoanByID(userID, loanID uint) (*models.Loan, error) {
	var application models.Loan
	if err := s.db.Where("id = ? AND user_id = ?", loanID, userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &application, nil
}

// GetSchedule returns the stored payment schedule for a loan. For an
// approved loan with no stored installments yet, the full schedule is
// generated and persisted first. Loans that are not approved have no
// schedule and return an empty list.
func (s *loanService) GetSchedule(userID, loanID uint) ([]models.Installment, error) {
	application, err := s.GetLoanByID(userID, loanID)
	if err != nil {
		return nil, err
	}

	var installments []models.Installment
	if err := s.db.Where("loan_id = ?", loanID).Order("number ASC").Find(&installments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(installments) > 0 || application.Status != models.LoanStatusApproved {
		return installments, nil
	}

	start := application.CreatedAt
	if application.StartDate != nil {
		start = *application.StartDate
	}
	entries, err := loan.GenerateSchedule(application.Amount, application.InterestRate, application.TermMonths, start)
	if err != nil {
		return nil, err
	}

	installments = make([]models.Installment, 0, len(entries))
	for _, entry := range entries {
		installments = append(installments, models.Installment{
			LoanID:             application.ID,
			Number:             entry.Number,
			DueDate:            entry.DueDate,
			Amount:             entry.Amount,
			Principal:          entry.Principal,
			Interest:           entry.Interest,
			RemainingPrincipal: entry.RemainingPrincipal,
			Status:             models.InstallmentStatusPending,
		})
	}

	// All or nothing: a partially stored schedule would violate the
	// full-amortization invariant.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&installments).Error
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return installments, nil
}

// GetSummary aggregates the user's applications for the dashboard.
func (s *loanService) GetSummary(userID uint) (*LoanSummary, error) {
	summary := &LoanSummary{}

	type statusCount struct {
		Status models.LoanStatus
		Count  int64
	}
	var counts []statusCount
	if err := s.db.Model(&models.Loan{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, c := range counts {
		summary.TotalLoans += c.Count
		switch c.Status {
		case models.LoanStatusPending:
			summary.PendingLoans = c.Count
		case models.LoanStatusApproved:
			summary.ApprovedLoans = c.Count
		case models.LoanStatusRejected:
			summary.RejectedLoans = c.Count
		}
	}

	var total *float64
	if err := s.db.Model(&models.Loan{}).
		Select("SUM(amount)").
		Where("user_id = ? AND status = ?", userID, models.LoanStatusApproved).
		Scan(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if total != nil {
		summary.TotalApprovedAmount = *total
	}

	return summary, nil
}

func (s *loanService) getUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
