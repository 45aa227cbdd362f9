package finance

import (
	"math"
	"testing"

	"fintrack/internal/testutil"
)

func TestComputeEMI(t *testing.T) {
	t.Run("standard_loan", func(t *testing.T) {
		// 100,000 at 12% over 12 months: EMI is 8,884.88 within a cent.
		emi, err := ComputeEMI(10000000, 12, 12)
		testutil.AssertNoError(t, err)

		if emi < 888487 || emi > 888489 {
			t.Errorf("expected EMI within a cent of 888488, got %d", emi)
		}
	})

	t.Run("zero_rate", func(t *testing.T) {
		emi, err := ComputeEMI(100000, 0, 10)
		testutil.AssertNoError(t, err)

		if emi != 10000 {
			t.Errorf("expected exactly 10000, got %d", emi)
		}
	})

	t.Run("long_tenure_stable", func(t *testing.T) {
		// 40-year mortgage must not overflow or go non-finite.
		emi, err := ComputeEMI(50000000, 6.5, 480)
		testutil.AssertNoError(t, err)

		if emi <= 0 {
			t.Errorf("expected positive EMI, got %d", emi)
		}
		// Payment must at least cover first month's interest.
		firstInterest := int64(math.Round(50000000 * 6.5 / 12 / 100))
		if emi <= firstInterest {
			t.Errorf("EMI %d does not cover first month's interest %d", emi, firstInterest)
		}
	})

	t.Run("invalid_principal", func(t *testing.T) {
		_, err := ComputeEMI(0, 12, 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = ComputeEMI(-1000, 12, 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_tenure", func(t *testing.T) {
		_, err := ComputeEMI(100000, 12, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_rate", func(t *testing.T) {
		_, err := ComputeEMI(100000, -1, 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAmortizationSchedule(t *testing.T) {
	t.Run("balance_reaches_zero", func(t *testing.T) {
		schedule, err := AmortizationSchedule(10000000, 12, 12)
		testutil.AssertNoError(t, err)

		if len(schedule) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(schedule))
		}
		if last := schedule[len(schedule)-1]; last.Balance != 0 {
			t.Errorf("expected final balance 0, got %d", last.Balance)
		}
	})

	t.Run("principal_plus_interest_equals_payment", func(t *testing.T) {
		schedule, err := AmortizationSchedule(10000000, 12, 12)
		testutil.AssertNoError(t, err)

		for _, inst := range schedule {
			if inst.Principal+inst.Interest != inst.Payment {
				t.Errorf("month %d: principal %d + interest %d != payment %d",
					inst.Month, inst.Principal, inst.Interest, inst.Payment)
			}
		}
	})

	t.Run("total_principal_equals_loan", func(t *testing.T) {
		schedule, err := AmortizationSchedule(10000000, 12, 12)
		testutil.AssertNoError(t, err)

		var total int64
		for _, inst := range schedule {
			total += inst.Principal
		}
		if total != 10000000 {
			t.Errorf("expected total principal 10000000, got %d", total)
		}
	})

	t.Run("zero_rate_schedule", func(t *testing.T) {
		schedule, err := AmortizationSchedule(120000, 0, 12)
		testutil.AssertNoError(t, err)

		if len(schedule) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(schedule))
		}
		for _, inst := range schedule {
			if inst.Interest != 0 {
				t.Errorf("month %d: expected zero interest, got %d", inst.Month, inst.Interest)
			}
		}
	})
}
