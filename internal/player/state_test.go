package player

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Idle, "Idle"},
		{Loading, "Loading"},
		{Paused, "Paused"},
		{Playing, "Playing"},
		{Ended, "Ended"},
		{Failed, "Failed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_HasSource(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{Idle, false},
		{Loading, false},
		{Paused, true},
		{Playing, true},
		{Ended, true},
		{Failed, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.HasSource(); got != tt.want {
				t.Errorf("State.HasSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_CanPause(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{Idle, false},
		{Loading, true},
		{Paused, false},
		{Playing, true},
		{Ended, false},
		{Failed, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.CanPause(); got != tt.want {
				t.Errorf("State.CanPause() = %v, want %v", got, tt.want)
			}
		})
	}
}
