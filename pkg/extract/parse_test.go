package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkerResponse(t *testing.T) {
	raw := "|||ANSWERS|||\n10 years\t9 years\t2\t$3000\t$4000\tDual\n|||EVIDENCE|||\n1. \"married in 2005\"\n"

	fields, evidence := ParseMarkerResponse(raw, 6)

	assert.Equal(t, []string{"10 years", "9 years", "2", "$3000", "$4000", "Dual"}, fields)
	assert.Equal(t, []string{"married in 2005"}, evidence)
}

func TestParseMarkerResponseFallback(t *testing.T) {
	raw := "10 years\t9 years\t2\n\nThe parties were married in 2005."

	fields, evidence := ParseMarkerResponse(raw, 6)

	assert.Equal(t, []string{"10 years", "9 years", "2", "NA", "NA", "NA"}, fields)
	assert.Equal(t, []string{"The parties were married in 2005."}, evidence)
}

func TestParseMarkerResponseFallbackNoEvidence(t *testing.T) {
	fields, evidence := ParseMarkerResponse("10 years\t9 years", 3)

	assert.Equal(t, []string{"10 years", "9 years", "NA"}, fields)
	assert.Equal(t, []string{NoEvidence}, evidence)
}

func TestParseMarkerResponseOutOfOrderMarkers(t *testing.T) {
	raw := "|||EVIDENCE|||\nsomething\n|||ANSWERS|||\n10 years"

	fields, evidence := ParseMarkerResponse(raw, 3)

	assert.Equal(t, []string{"Error", "Error", "Error"}, fields)
	assert.Equal(t, []string{"Error processing output"}, evidence)
}

func TestParseMarkerResponseNeverTruncates(t *testing.T) {
	raw := "|||ANSWERS|||\na\tb\tc\td\n|||EVIDENCE|||\n"

	fields, _ := ParseMarkerResponse(raw, 2)

	// Excess long-form fields are preserved for cross-prompt concatenation.
	assert.Equal(t, []string{"a", "b", "c", "d"}, fields)
}

func TestParseMarkerResponseEvidenceCleanup(t *testing.T) {
	raw := "|||ANSWERS|||\na\tb\n|||EVIDENCE|||\n1. \"first passage\"\n\n2.\t“second passage”\n"

	_, evidence := ParseMarkerResponse(raw, 2)

	assert.Equal(t, []string{"first passage", "second passage"}, evidence)
}

func TestParseLineResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "exact",
			raw:  "Dual\t45\t55\tPlus 10",
			want: []string{"Dual", "45", "55", "Plus 10"},
		},
		{
			name: "short response padded",
			raw:  "Dual\t45",
			want: []string{"Dual", "45", "NA", "NA"},
		},
		{
			name: "long response truncated",
			raw:  "Dual\t45\t55\tPlus 10\textra\tmore",
			want: []string{"Dual", "45", "55", "Plus 10"},
		},
		{
			name: "empty response",
			raw:  "   ",
			want: []string{"NA", "NA", "NA", "NA"},
		},
		{
			name: "trailing tab",
			raw:  "Dual\t45\t55\tPlus 10\t",
			want: []string{"Dual", "45", "55", "Plus 10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLineResponse(tt.raw, 4))
		})
	}
}
