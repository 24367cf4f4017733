package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", New(7, 3, 1024, 4, 6), false},
		{"domain not power of two", New(7, 3, 1000, 4, 6), true},
		{"expansion factor not power of two", New(7, 3, 1024, 3, 6), true},
		{"expansion factor below two", New(7, 3, 1024, 1, 6), true},
		{"expansion factor exceeds domain", New(7, 3, 8, 16, 6), true},
		{"zero colinearity checks", New(7, 3, 1024, 4, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithBuilders(t *testing.T) {
	base := New(7, 3, 1024, 4, 6)

	withOffset := base.WithOffset(11)
	if withOffset.Offset != 11 {
		t.Errorf("WithOffset did not update Offset: got %d", withOffset.Offset)
	}
	if base.Offset != 7 {
		t.Errorf("WithOffset mutated the receiver: got %d", base.Offset)
	}

	withChecks := base.WithColinearityChecks(10)
	if withChecks.ColinearityChecks != 10 {
		t.Errorf("WithColinearityChecks did not update count: got %d", withChecks.ColinearityChecks)
	}

	clone := base.Clone()
	if clone != base {
		t.Errorf("Clone() = %+v, want %+v", clone, base)
	}
}
