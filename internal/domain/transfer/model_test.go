package transfer

import "testing"

func TestPenalty(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 0},
		{n: 1, want: 0},
		{n: 2, want: 10},
		{n: 3, want: 20},
		{n: 5, want: 40},
	}

	for _, tt := range tests {
		if got := Penalty(tt.n); got != tt.want {
			t.Fatalf("Penalty(%d)=%d want=%d", tt.n, got, tt.want)
		}
	}
}
