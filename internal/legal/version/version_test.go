package version

import "testing"

func TestNext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		existing []string
		isMajor  bool
		want     string
	}{
		{"empty family", nil, false, "v1.0"},
		{"empty family major", nil, true, "v1.0"},
		{"minor bump", []string{"v1.0", "v1.1"}, false, "v1.2"},
		{"major bump resets minor", []string{"v1.0", "v1.7"}, true, "v2.0"},
		{"major compared before minor", []string{"v1.9", "v2.0"}, false, "v2.1"},
		{"missing v prefix accepted", []string{"3.2"}, false, "v3.3"},
		{"noise ignored", []string{"beta-1", "rascunho"}, false, "v1.0"},
		{"noise alongside real versions", []string{"beta-1", "v2.3"}, false, "v2.4"},
		{"never reuses a burned version", []string{"v1.0", "v1.1", "v1.2"}, false, "v1.3"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Next(tc.existing, tc.isMajor); got != tc.want {
				t.Fatalf("Next(%v, %v) = %q, want %q", tc.existing, tc.isMajor, got, tc.want)
			}
		})
	}
}

func TestNextIsMonotonic(t *testing.T) {
	t.Parallel()

	existing := []string{"v1.0"}
	for i := 0; i < 30; i++ {
		next := Next(existing, i%5 == 0)
		for _, prev := range existing {
			if next == prev {
				t.Fatalf("version %q reused after %v", next, existing)
			}
		}
		existing = append(existing, next)
	}
}
