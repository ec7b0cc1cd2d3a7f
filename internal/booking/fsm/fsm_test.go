package fsm

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusUserCancelled, true},
		{StatusPending, StatusCancelledAuto, true},
		{StatusPending, StatusCompletedPaymentReleased, false},
		{StatusAccepted, StatusCompletedPaymentReleased, true},
		{StatusAccepted, StatusUserCancelled, true},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusCancelledAuto, false},
		{StatusRejected, StatusAccepted, false},
		{StatusUserCancelled, StatusUserCancelled, false},
		{StatusCompletedPaymentReleased, StatusUserCancelled, false},
		{StatusCancelledAuto, StatusPending, false},
		{"unknown", StatusAccepted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []string{StatusRejected, StatusUserCancelled, StatusCancelledAuto, StatusCompletedPaymentReleased}
	for _, s := range terminal {
		if !IsTerminal(s) {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []string{StatusPending, StatusAccepted, "unknown"} {
		if IsTerminal(s) {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}
