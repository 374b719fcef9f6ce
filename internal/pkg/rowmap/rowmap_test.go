package rowmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowGet_ExactMatchWins(t *testing.T) {
	row := Row{
		"Employee Code": "11410",
		"employee code": "99999",
	}

	assert.Equal(t, "11410", row.Get("Employee Code", "Employee ID"))
}

func TestRowGet_CaseAndWhitespaceInsensitive(t *testing.T) {
	row := Row{
		"  employee CODE  ": "11410",
	}

	assert.Equal(t, "11410", row.Get("Employee Code"))
}

func TestRowGet_EmptyValuesSkipped(t *testing.T) {
	row := Row{
		"Employee Code": "   ",
		"Employee ID":   "204",
	}

	assert.Equal(t, "204", row.Get("Employee Code", "Employee ID"))
}

func TestRowGet_MissingFieldIsEmptyString(t *testing.T) {
	row := Row{"Name": "Jane"}

	assert.Equal(t, "", row.Get("Employee Code", "Employee ID"))
}

func TestRowGet_CandidateOrderIsPreference(t *testing.T) {
	row := Row{
		"Company":      "Fallback Co",
		"Company Name": "Primary Co",
	}

	assert.Equal(t, "Primary Co", row.Get(CompanyKeys...))
}

func TestRowGet_CollidingHeadersResolveDeterministically(t *testing.T) {
	row := Row{
		"Company Name ": "Alpha Ltd",
		"company name":  "Beta Ltd",
	}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "Alpha Ltd", row.Get("Company Name"))
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits", "11410", "11410"},
		{"spreadsheet float suffix", "11410.0", "11410"},
		{"digits with spaces", " 11410 ", "11410"},
		{"alphanumeric lowered", "EMP-204", "emp-204"},
		{"email identity", "Jane.Doe@cg-bd.com", "jane.doe@cg-bd.com"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.in))
		})
	}
}

func TestNormalizeCode_FloatAndPlainMatch(t *testing.T) {
	assert.Equal(t, NormalizeCode("11410"), NormalizeCode("11410.0"))
}
