package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/company-intake/internal/model"
)

func TestClassifyEmployeeSize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// bare integers with optional trailing +
		{"6", "1-10"},
		{"11", "11-50"},
		{"150", "51-200"},
		{"100000+", "10 000+"},
		{"8000", "5 001-10 000"},
		// comparison forms
		{"> 10000", "5 001-10 000"},
		{">10001", "10 000+"},
		{"> 5k", "1 001-5 000"},
		// approximation
		{"~67000", "10 000+"},
		{"~40", "11-50"},
		// ranges take the upper bound
		{"51-200", "51-200"},
		{"1-10", "1-10"},
		{"500-2000", "1 001-5 000"},
		// thousands-grouped
		{"12,500", "10 000+"},
		{"2,500", "1 001-5 000"},
		{"1,000", "501-1 000"},
		// embedded k suffix
		{"3k", "1 001-5 000"},
		{"about 10K people", "5 001-10 000"},
		// last-resort embedded integer
		{"around 75 employees", "51-200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyEmployeeSize(tt.in), "input %q", tt.in)
	}
}

func TestClassifyEmployeeSizeBoundaries(t *testing.T) {
	assert.Equal(t, "1-10", ClassifyEmployeeSize("10"))
	assert.Equal(t, "11-50", ClassifyEmployeeSize("11"))
	assert.Equal(t, "11-50", ClassifyEmployeeSize("50"))
	assert.Equal(t, "51-200", ClassifyEmployeeSize("51"))
	assert.Equal(t, "201-500", ClassifyEmployeeSize("500"))
	assert.Equal(t, "501-1 000", ClassifyEmployeeSize("1000"))
	assert.Equal(t, "1 001-5 000", ClassifyEmployeeSize("5000"))
	assert.Equal(t, "5 001-10 000", ClassifyEmployeeSize("10000"))
	assert.Equal(t, "10 000+", ClassifyEmployeeSize("10001"))
}

func TestClassifyEmployeeSizeUnparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "unknown", "many", "n/a"} {
		assert.Equal(t, "", ClassifyEmployeeSize(in), "input %q", in)
	}
}

func TestClassifyEmployeeSizeAlwaysCanonical(t *testing.T) {
	inputs := []string{"1", "10", "37", "999", "12,500", "~67000", ">9k", "1500000", "5-10 people"}
	for _, in := range inputs {
		got := ClassifyEmployeeSize(in)
		assert.True(t, model.IsEmployeeSizeBucket(got), "input %q produced %q", in, got)
	}
}
