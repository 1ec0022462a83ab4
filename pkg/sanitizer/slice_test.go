package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeServices(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "convert to lowercase",
			input: []string{"Plumber", "ELECTRICIAN"},
			want:  []string{"plumber", "electrician"},
		},
		{
			name:  "trim whitespace",
			input: []string{" plumber ", "  painter  "},
			want:  []string{"plumber", "painter"},
		},
		{
			name:  "remove duplicates keeping first position",
			input: []string{"Plumber", "painter", "plumber", "PLUMBER"},
			want:  []string{"plumber", "painter"},
		},
		{
			name:  "filter empty strings",
			input: []string{"plumber", "", "  ", "gardener"},
			want:  []string{"plumber", "gardener"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
		{
			name:  "all blank",
			input: []string{"", " "},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeServices(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeServices(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
