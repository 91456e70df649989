package words

import "testing"

func TestSample(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{name: "typical game size", n: 10},
		{name: "single word", n: 1},
		{name: "entire pool", n: len(Pool)},
		{name: "zero", n: 0, wantErr: true},
		{name: "negative", n: -5, wantErr: true},
		{name: "more than pool", n: len(Pool) + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample, err := Sample(tt.n)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Sample(%d) succeeded, want error", tt.n)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sample(%d) failed: %v", tt.n, err)
			}
			if len(sample) != tt.n {
				t.Errorf("Sample(%d) returned %d words", tt.n, len(sample))
			}

			inPool := make(map[string]bool, len(Pool))
			for _, w := range Pool {
				inPool[w] = true
			}
			seen := make(map[string]bool, len(sample))
			for _, w := range sample {
				if !inPool[w] {
					t.Errorf("Sampled word %q not in pool", w)
				}
				if seen[w] {
					t.Errorf("Duplicate word in sample: %q", w)
				}
				seen[w] = true
			}
		})
	}
}

func TestSampleDoesNotMutatePool(t *testing.T) {
	before := make([]string, len(Pool))
	copy(before, Pool)

	if _, err := Sample(len(Pool)); err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	for i, w := range Pool {
		if w != before[i] {
			t.Fatalf("Pool mutated at index %d: %q -> %q", i, before[i], w)
		}
	}
}
