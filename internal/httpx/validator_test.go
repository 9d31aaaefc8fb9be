package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleReq struct {
	Title  string `json:"title" validate:"required,notblank,max=10"`
	Born   string `json:"born" validate:"omitempty,date"`
	Copies *int   `json:"copies" validate:"required,gte=0,lte=2147483647"`
}

func TestValidateStruct(t *testing.T) {
	zero, huge := 0, 3000000000

	assert.Nil(t, ValidateStruct(sampleReq{Title: "Dune", Born: "1965-08-01", Copies: &zero}))

	tests := []struct {
		name    string
		req     sampleReq
		field   string
		message string
	}{
		{"blank title", sampleReq{Title: "   ", Copies: &zero}, "title", "title must not be blank"},
		{"bad date", sampleReq{Title: "Dune", Born: "01/08/1965", Copies: &zero}, "born", "born must be a date in YYYY-MM-DD format"},
		{"missing copies", sampleReq{Title: "Dune"}, "copies", "copies is required"},
		{"copies beyond int4", sampleReq{Title: "Dune", Copies: &huge}, "copies", "copies must be less than or equal to 2147483647"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := ValidateStruct(tc.req)
			require.Len(t, details, 1)
			assert.Equal(t, tc.field, details[0].Field)
			assert.Equal(t, tc.message, details[0].Message)
		})
	}
}
