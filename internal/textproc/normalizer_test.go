package textproc

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace runs",
			in:   "hello   world\t\tagain",
			want: "hello world again",
		},
		{
			name: "single space after sentence punctuation",
			in:   "First.Second!   Third?Fourth",
			want: "First. Second! Third? Fourth",
		},
		{
			name: "protects ellipses",
			in:   "Well...I am not sure....really",
			want: "Well...I am not sure....really",
		},
		{
			name: "trims",
			in:   "  padded  ",
			want: "padded",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"hello   world",
		"First.Second! Third",
		"trailing dots...",
		"a.b.c...d!e?f",
		"   ",
		"no punctuation at all",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
