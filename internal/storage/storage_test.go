package storage

import "testing"

func TestRecalculateDerivedRating(t *testing.T) {
	tests := []struct {
		name   string
		record PlayerRecord
		want   float64
	}{
		{
			name:   "regular career",
			record: PlayerRecord{Games: 10, Wins: 4, Survivals: 6, Draws: 2},
			want:   (4 + 6*0.5) * 10 / 4,
		},
		{
			name:   "no losses avoids division by zero",
			record: PlayerRecord{Games: 3, Wins: 2, Survivals: 3, Draws: 1},
			want:   (2 + 3*0.5) * 3,
		},
		{
			name:   "empty career",
			record: PlayerRecord{},
			want:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.record.RecalculateDerivedRating()
			if tc.record.Rate != tc.want {
				t.Fatalf("rate = %v, want %v", tc.record.Rate, tc.want)
			}
		})
	}
}
