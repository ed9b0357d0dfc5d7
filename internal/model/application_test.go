package model

import "testing"

func strp(s string) *string { return &s }

func TestOverdue(t *testing.T) {
	today := "2026-09-01"
	cases := []struct {
		name     string
		followUp *string
		status   string
		want     bool
	}{
		{"no follow up date", nil, StatusApplied, false},
		{"empty follow up date", strp(""), StatusApplied, false},
		{"past date active status", strp("2026-08-15"), StatusInterview, true},
		{"past date offer", strp("2026-08-15"), StatusOffer, false},
		{"past date rejected", strp("2026-08-15"), StatusRejected, false},
		{"past date ghosted", strp("2026-08-15"), StatusGhosted, true},
		{"due today is not overdue", strp("2026-09-01"), StatusApplied, false},
		{"future date", strp("2026-09-10"), StatusApplied, false},
		{"year boundary", strp("2025-12-31"), StatusAssessment, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overdue(tc.followUp, tc.status, today); got != tc.want {
				t.Errorf("Overdue(%v, %q, %q) = %v, want %v", tc.followUp, tc.status, today, got, tc.want)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "applied", "Hired", "OFFER"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true, want false", s)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	if !IsTerminalStatus(StatusOffer) || !IsTerminalStatus(StatusRejected) {
		t.Error("Offer and Rejected must be terminal")
	}
	for _, s := range []string{StatusApplied, StatusAssessment, StatusInterview, StatusGhosted} {
		if IsTerminalStatus(s) {
			t.Errorf("IsTerminalStatus(%q) = true, want false", s)
		}
	}
}
