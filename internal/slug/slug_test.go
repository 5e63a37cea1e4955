package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/savr/internal/slug"
)

func TestMake(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{name: "simple", input: "GCash", want: "gcash"},
		{name: "spaces", input: "Emergency Fund", want: "emergency-fund"},
		{name: "accents and punctuation", input: "Emergency Fund (Año 2)", want: "emergency-fund-ano-2"},
		{name: "leading and trailing junk", input: "  --BPI Savings!! ", want: "bpi-savings"},
		{name: "only symbols", input: "₱₱₱", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.input))
		})
	}
}
