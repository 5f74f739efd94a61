package main

import "testing"

func TestResolveGameID(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"blast", "blast", false},
		{"blast_timed", "blast_timed", false},
		{"classic", "blast", false},
		{"timed", "blast_timed", false},
		{"challenge", "blast_challenge", false},
		{"tetris", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := resolveGameID(tc.arg)
		if (err != nil) != tc.wantErr {
			t.Errorf("resolveGameID(%q) error = %v, wantErr %v", tc.arg, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("resolveGameID(%q) = %q, expected %q", tc.arg, got, tc.want)
		}
	}
}
