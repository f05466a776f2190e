package models

import "testing"

func TestValidOrderStatus(t *testing.T) {
	valid := []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"}
	for _, s := range valid {
		if !ValidOrderStatus(s) {
			t.Errorf("Expected %q to be a valid status", s)
		}
	}

	invalid := []string{"", "Pending", "refunded", "done", "SHIPPED"}
	for _, s := range invalid {
		if ValidOrderStatus(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

func TestRevenueStatusesExcludePendingAndCancelled(t *testing.T) {
	for _, s := range RevenueStatuses {
		if s == OrderStatusPending || s == OrderStatusCancelled {
			t.Errorf("Revenue must not include %q orders", s)
		}
	}
	if len(RevenueStatuses) != 4 {
		t.Errorf("Expected 4 revenue statuses, got %d", len(RevenueStatuses))
	}
}
