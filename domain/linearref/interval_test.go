package linearref

import "testing"

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name          string
		a, b          Interval
		strict        bool
		inclusive     bool
	}{
		{
			name:      "clear overlap",
			a:         NewInterval(0.0, 0.5),
			b:         NewInterval(0.25, 0.75),
			strict:    true,
			inclusive: true,
		},
		{
			name:      "disjoint",
			a:         NewInterval(0.0, 0.25),
			b:         NewInterval(0.5, 0.75),
			strict:    false,
			inclusive: false,
		},
		{
			name:      "boundary touch",
			a:         NewInterval(0.0, 0.5),
			b:         NewInterval(0.5, 1.0),
			strict:    false,
			inclusive: true,
		},
		{
			name:      "containment",
			a:         NewInterval(0.0, 1.0),
			b:         NewInterval(0.55, 0.58),
			strict:    true,
			inclusive: true,
		},
		{
			name:      "zero-length target inside",
			a:         NewInterval(0.5, 0.5),
			b:         NewInterval(0.0, 1.0),
			strict:    false,
			inclusive: true,
		},
		{
			name:      "point restriction on segment",
			a:         NewInterval(0.0, 1.0),
			b:         NewInterval(0.3, 0.3),
			strict:    false,
			inclusive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b, Strict); got != tt.strict {
				t.Errorf("strict overlap = %v, want %v", got, tt.strict)
			}
			if got := tt.a.Overlaps(tt.b, Inclusive); got != tt.inclusive {
				t.Errorf("inclusive overlap = %v, want %v", got, tt.inclusive)
			}
			// Overlap is symmetric under both policies.
			if got := tt.b.Overlaps(tt.a, Strict); got != tt.strict {
				t.Errorf("strict overlap not symmetric")
			}
			if got := tt.b.Overlaps(tt.a, Inclusive); got != tt.inclusive {
				t.Errorf("inclusive overlap not symmetric")
			}
		})
	}
}

func TestInterval_IsEmpty(t *testing.T) {
	if !NewInterval(0.5, 0.5).IsEmpty() {
		t.Error("zero-length interval should be empty")
	}
	if !NewInterval(0.7, 0.3).IsEmpty() {
		t.Error("inverted interval should be empty")
	}
	if NewInterval(0.0, 0.1).IsEmpty() {
		t.Error("positive interval should not be empty")
	}
}

func TestPolicy_String(t *testing.T) {
	if Strict.String() != "strict" {
		t.Errorf("Strict.String() = %v", Strict.String())
	}
	if Inclusive.String() != "inclusive" {
		t.Errorf("Inclusive.String() = %v", Inclusive.String())
	}
}
