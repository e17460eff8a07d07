package transactions

import (
	"testing"

	"hawurwanda/models"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		deposit     float64
		amount      float64
		wantDeposit float64
		wantBalance float64
		wantStatus  string
	}{
		{"deposit then partial", 5000, 0, 2500, 2500, 2500, models.PaymentPartial},
		{"balance paid off", 5000, 2500, 2500, 5000, 0, models.PaymentPaid},
		{"full in one go", 5000, 0, 5000, 5000, 0, models.PaymentPaid},
		{"overpayment clamps", 5000, 2500, 4000, 5000, 0, models.PaymentPaid},
		{"small top-up", 10000, 5000, 1000, 6000, 4000, models.PaymentPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deposit, balance, status := settle(tt.total, tt.deposit, tt.amount)
			if deposit != tt.wantDeposit || balance != tt.wantBalance || status != tt.wantStatus {
				t.Errorf("settle(%v, %v, %v) = (%v, %v, %s), want (%v, %v, %s)",
					tt.total, tt.deposit, tt.amount,
					deposit, balance, status,
					tt.wantDeposit, tt.wantBalance, tt.wantStatus)
			}
			if deposit+balance != tt.total {
				t.Errorf("invariant broken: %v + %v != %v", deposit, balance, tt.total)
			}
		})
	}
}
