package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomersKeepsLatestPerKey(t *testing.T) {
	in := []RawCustomer{
		{ID: "1001", Key: "AW00001001", FirstName: "Jon", LastName: "Yang", MaritalStatus: "M", Gender: "M", CreateDate: "2025-01-01"},
		{ID: "1001", Key: "AW00001001", FirstName: "Jon", LastName: "Yang", MaritalStatus: "S", Gender: "M", CreateDate: "2025-03-15"},
		{ID: "1002", Key: "AW00001002", FirstName: "Eugene", LastName: "Huang", MaritalStatus: "S", Gender: "M", CreateDate: "2025-02-02"},
	}

	out := Customers(in)
	require.Len(t, out, 2)

	assert.Equal(t, int64(1001), out[0].ID)
	assert.Equal(t, "Single", out[0].MaritalStatus, "latest record wins")
	assert.Equal(t, int64(1002), out[1].ID)
}

func TestCustomersTieBreaksFirstSeen(t *testing.T) {
	in := []RawCustomer{
		{ID: "1001", FirstName: "First", CreateDate: "2025-01-01"},
		{ID: "1001", FirstName: "Second", CreateDate: "2025-01-01"},
	}

	out := Customers(in)
	require.Len(t, out, 1)
	assert.Equal(t, "First", out[0].FirstName, "equal timestamps keep the first-seen record")
}

func TestCustomersDropsNullBusinessKey(t *testing.T) {
	in := []RawCustomer{
		{ID: "", FirstName: "Ghost"},
		{ID: "not-a-number", FirstName: "AlsoGhost"},
		{ID: "1003", FirstName: "Real", CreateDate: "2025-01-01"},
	}

	out := Customers(in)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1003), out[0].ID)
}

func TestCustomersTrimsAndMaps(t *testing.T) {
	in := []RawCustomer{
		{ID: "1004", Key: " AW00001004 ", FirstName: "  Christy  ", LastName: " Zhu ", MaritalStatus: " s ", Gender: " f ", CreateDate: "2025-01-01"},
	}

	out := Customers(in)
	require.Len(t, out, 1)
	assert.Equal(t, "AW00001004", out[0].Key)
	assert.Equal(t, "Christy", out[0].FirstName)
	assert.Equal(t, "Zhu", out[0].LastName)
	assert.Equal(t, "Single", out[0].MaritalStatus)
	assert.Equal(t, "Female", out[0].Gender)
}

func TestCustomersUnmappedCodesDefault(t *testing.T) {
	in := []RawCustomer{
		{ID: "1005", MaritalStatus: "X", Gender: "", CreateDate: "2025-01-01"},
	}

	out := Customers(in)
	require.Len(t, out, 1)
	assert.Equal(t, NotAvailable, out[0].MaritalStatus)
	assert.Equal(t, NotAvailable, out[0].Gender)
}

func TestCustomersNilCreateDateLosesToReal(t *testing.T) {
	in := []RawCustomer{
		{ID: "1006", FirstName: "NoDate", CreateDate: "garbage"},
		{ID: "1006", FirstName: "HasDate", CreateDate: "2025-01-01"},
	}

	out := Customers(in)
	require.Len(t, out, 1)
	assert.Equal(t, "HasDate", out[0].FirstName)
}

func TestCustomersIdempotent(t *testing.T) {
	in := []RawCustomer{
		{ID: "1001", Key: "AW00001001", FirstName: " Jon ", LastName: "Yang", MaritalStatus: "m", Gender: "M", CreateDate: "2025-01-01"},
		{ID: "1001", Key: "AW00001001", FirstName: "Jon", LastName: "Yang", MaritalStatus: "S", Gender: "M", CreateDate: "2025-03-15"},
		{ID: "1002", Key: "AW00001002", FirstName: "Eugene", LastName: "Huang", MaritalStatus: "X", Gender: "", CreateDate: "2025-02-02"},
	}

	once := Customers(in)
	again := Customers(rawFromCustomers(once))
	assert.Equal(t, once, again)
}

// rawFromCustomers feeds cleaned output back through the raw representation
func rawFromCustomers(in []Customer) []RawCustomer {
	out := make([]RawCustomer, 0, len(in))
	for _, c := range in {
		raw := RawCustomer{
			ID:            formatInt(c.ID),
			Key:           c.Key,
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			MaritalStatus: c.MaritalStatus,
			Gender:        c.Gender,
		}
		if c.CreateDate != nil {
			raw.CreateDate = c.CreateDate.Format("2006-01-02")
		}
		out = append(out, raw)
	}
	return out
}
