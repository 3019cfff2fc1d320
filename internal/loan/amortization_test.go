package loan

import (
	"errors"
	"math"
	"testing"
	"time"

	apperrors "lendana/internal/errors"
)

func within(t *testing.T, want, got, tolerance float64, label string) {
	t.Helper()
	if math.Abs(want-got) > tolerance {
		t.Errorf("%s: expected %v (±%v), got %v", label, want, tolerance, got)
	}
}

func assertInvalidInput(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

func TestComputeInstallment(t *testing.T) {
	t.Run("standard_loan", func(t *testing.T) {
		installment, err := ComputeInstallment(500000, 10.5, 24)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if installment != 23188.02 {
			t.Errorf("expected installment 23188.02, got %v", installment)
		}
	})

	t.Run("zero_rate_divides_principal", func(t *testing.T) {
		installment, err := ComputeInstallment(1200, 0, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if installment != 100 {
			t.Errorf("expected installment 100, got %v", installment)
		}
	})

	t.Run("zero_rate_rounds", func(t *testing.T) {
		installment, err := ComputeInstallment(1000, 0, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if installment != 333.33 {
			t.Errorf("expected installment 333.33, got %v", installment)
		}
	})

	t.Run("always_positive", func(t *testing.T) {
		for _, tc := range []struct {
			principal float64
			rate      float64
			term      int
		}{
			{100, 0, 1},
			{100000, 12, 12},
			{300000, 8.5, 120},
			{0.01, 25, 360},
		} {
			installment, err := ComputeInstallment(tc.principal, tc.rate, tc.term)
			if err != nil {
				t.Fatalf("unexpected error for %+v: %v", tc, err)
			}
			if installment <= 0 {
				t.Errorf("expected positive installment for %+v, got %v", tc, installment)
			}
		}
	})

	t.Run("rejects_terms_beyond_limits", func(t *testing.T) {
		// Past the limits the compounding factor overflows float64 and the
		// formula degrades to Inf/Inf; these inputs must error, never
		// produce a non-finite installment.
		_, err := ComputeInstallment(1000, 10.5, 100000)
		assertInvalidInput(t, err)

		_, err = ComputeInstallment(MaxPrincipal*2, 10.5, 24)
		assertInvalidInput(t, err)

		_, err = ComputeInstallment(500000, MaxAnnualRate+1, 24)
		assertInvalidInput(t, err)
	})

	t.Run("finite_at_the_limits", func(t *testing.T) {
		installment, err := ComputeInstallment(MaxPrincipal, MaxAnnualRate, MaxTermMonths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.IsNaN(installment) || math.IsInf(installment, 0) || installment <= 0 {
			t.Errorf("expected a finite positive installment, got %v", installment)
		}
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		_, err := ComputeInstallment(0, 10, 12)
		assertInvalidInput(t, err)

		_, err = ComputeInstallment(-5000, 10, 12)
		assertInvalidInput(t, err)

		_, err = ComputeInstallment(5000, 10, 0)
		assertInvalidInput(t, err)

		_, err = ComputeInstallment(5000, -1, 12)
		assertInvalidInput(t, err)
	})
}

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("length_and_final_balance", func(t *testing.T) {
		schedule, err := GenerateSchedule(500000, 10.5, 24, start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(schedule) != 24 {
			t.Fatalf("expected 24 entries, got %d", len(schedule))
		}
		last := schedule[len(schedule)-1]
		within(t, 0, last.RemainingPrincipal, 0.01, "final remaining principal")
	})

	t.Run("principal_sums_to_loan_amount", func(t *testing.T) {
		schedule, err := GenerateSchedule(500000, 10.5, 24, start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var total float64
		for _, entry := range schedule {
			total += entry.Principal
		}
		within(t, 500000, total, 0.01, "sum of principal components")
	})

	t.Run("components_add_up_per_entry", func(t *testing.T) {
		schedule, err := GenerateSchedule(100000, 12, 12, start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, entry := range schedule {
			within(t, entry.Amount, entry.Principal+entry.Interest, 0.01, "principal+interest vs amount")
		}
	})

	t.Run("due_dates_every_30_days", func(t *testing.T) {
		schedule, err := GenerateSchedule(100000, 12, 3, start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, entry := range schedule {
			if entry.Number != i+1 {
				t.Errorf("entry %d: expected number %d, got %d", i, i+1, entry.Number)
			}
			expected := start.AddDate(0, 0, 30*(i+1))
			if !entry.DueDate.Equal(expected) {
				t.Errorf("entry %d: expected due date %v, got %v", i, expected, entry.DueDate)
			}
		}
	})

	t.Run("zero_rate_schedule", func(t *testing.T) {
		schedule, err := GenerateSchedule(1200, 0, 12, start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, entry := range schedule {
			if entry.Interest != 0 {
				t.Errorf("entry %d: expected zero interest, got %v", entry.Number, entry.Interest)
			}
			if entry.Amount != 100 {
				t.Errorf("entry %d: expected amount 100, got %v", entry.Number, entry.Amount)
			}
		}
		if schedule[11].RemainingPrincipal != 0 {
			t.Errorf("expected final remaining principal 0, got %v", schedule[11].RemainingPrincipal)
		}
	})

	t.Run("invalid_inputs_produce_no_entries", func(t *testing.T) {
		schedule, err := GenerateSchedule(-1, 10, 12, start)
		assertInvalidInput(t, err)
		if schedule != nil {
			t.Errorf("expected nil schedule on error, got %d entries", len(schedule))
		}
	})
}

func TestComputeTotalInterest(t *testing.T) {
	t.Run("standard_loan", func(t *testing.T) {
		total, err := ComputeTotalInterest(500000, 10.5, 24)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 56512.48 {
			t.Errorf("expected total interest 56512.48, got %v", total)
		}
	})

	t.Run("zero_rate_is_free", func(t *testing.T) {
		total, err := ComputeTotalInterest(1200, 0, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 0 {
			t.Errorf("expected zero interest, got %v", total)
		}
	})

	t.Run("consistent_with_schedule", func(t *testing.T) {
		for _, tc := range []struct {
			principal float64
			rate      float64
			term      int
		}{
			{500000, 10.5, 24},
			{100000, 12, 12},
			{300000, 8.5, 120},
		} {
			total, err := ComputeTotalInterest(tc.principal, tc.rate, tc.term)
			if err != nil {
				t.Fatalf("unexpected error for %+v: %v", tc, err)
			}
			schedule, err := GenerateSchedule(tc.principal, tc.rate, tc.term, time.Now())
			if err != nil {
				t.Fatalf("unexpected error for %+v: %v", tc, err)
			}
			var sum float64
			for _, entry := range schedule {
				sum += entry.Interest
			}
			// Per-entry rounding drifts a few cents across the term.
			within(t, total, sum, 0.05, "total interest vs schedule sum")
		}
	})
}
