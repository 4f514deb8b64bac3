package convert

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercast-dev/ledgercast/internal/normalize"
)

func TestWriteRejects(t *testing.T) {
	rejections := []Rejection{
		{Row: 3, Reason: normalize.ReasonInvalidAmount, Detail: `amount "abc": not a number`, Organization: "Acme", Amount: "abc", Date: "2021-01-02"},
		{Row: 7, Reason: normalize.ReasonMissingOrganization, Detail: "empty organization column", Date: "2021-01-09", Note: "ნაღდი"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRejects(&buf, rejections))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"row", "reason", "detail", "organization", "amount", "date", "note"}, rows[0])
	assert.Equal(t, "3", rows[1][0])
	assert.Equal(t, "invalid_amount", rows[1][1])
	assert.Equal(t, "Acme", rows[1][3])
	assert.Equal(t, "missing_organization", rows[2][1])
	assert.Equal(t, "ნაღდი", rows[2][6])
}
