package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEvidenceLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "enumeration prefix and quotes",
			in:   `1. "married in 2005"`,
			want: "married in 2005",
		},
		{
			name: "tabbed enumeration",
			in:   "2.\t\"The wife earned a monthly income of $3,000.\"",
			want: "The wife earned a monthly income of $3,000.",
		},
		{
			name: "curly quotes",
			in:   "3. “This was a long-term single income marriage”",
			want: "This was a long-term single income marriage",
		},
		{
			name: "non-breaking spaces",
			in:   "4. the parties separated",
			want: "the parties separated",
		},
		{
			name: "no prefix no quotes",
			in:   "  they have three children  ",
			want: "they have three children",
		},
		{
			name: "interior quotes preserved",
			in:   `5. "A... B... C"`,
			want: "A... B... C",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanEvidenceLine(tt.in))
		})
	}
}

func TestCleanEvidenceLineIdempotent(t *testing.T) {
	lines := []string{
		`1. "married in 2005"`,
		"2.\t“The DJ found that the husband was unemployed”",
		"plain evidence with $3,000 and 45%",
	}
	for _, line := range lines {
		once := CleanEvidenceLine(line)
		assert.Equal(t, once, CleanEvidenceLine(once))
	}
}

func TestEncodeFragment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "spaces percent encoded",
			in:   "married in 2005",
			want: "married%20in%202005",
		},
		{
			name: "ellipsis becomes join marker",
			in:   "A sentence...another sentence",
			want: "A%20sentence&text=another%20sentence",
		},
		{
			name: "quoted ellipsis separator",
			in:   `first"..."second`,
			want: "first&text=second",
		},
		{
			name: "hyphens encoded explicitly",
			in:   "long-term marriage",
			want: "long%2Dterm%20marriage",
		},
		{
			name: "en dash folded then encoded",
			in:   "2005–2020",
			want: "2005%2D2020",
		},
		{
			name: "percent preserved",
			in:   "45% of assets",
			want: "45%%20of%20assets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeFragment(tt.in))
		})
	}
}

func TestLocator(t *testing.T) {
	got := Locator("https://example.org/judgment/1", "married in 2005")
	assert.Equal(t, "https://example.org/judgment/1#:~:text=married%20in%202005", got)

	assert.Empty(t, Locator("", "married in 2005"))
}
