package brief

import "testing"

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, true},
		{"pending to declined", StatusPending, StatusDeclined, true},
		{"pending to withdrawn", StatusPending, StatusWithdrawn, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"accepted to declined", StatusAccepted, StatusDeclined, false},
		{"accepted to withdrawn", StatusAccepted, StatusWithdrawn, false},
		{"declined to accepted", StatusDeclined, StatusAccepted, false},
		{"withdrawn to accepted", StatusWithdrawn, StatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Error("pending must not be terminal")
	}
	for _, s := range []Status{StatusAccepted, StatusDeclined, StatusWithdrawn} {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusDeclined, StatusWithdrawn} {
		if !s.IsValid() {
			t.Errorf("%s must be valid", s)
		}
	}
	if Status("archived").IsValid() {
		t.Error("unknown status must not be valid")
	}
}
