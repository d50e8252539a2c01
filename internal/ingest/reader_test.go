package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCustomers(t *testing.T) {
	csv := "cst_id,cst_key,cst_firstname,cst_lastname,cst_marital_status,cst_gndr,cst_create_date\n" +
		"11000,AW00011000,Jon,Yang,M,M,2025-10-06\n" +
		"11001,AW00011001,Eugene,Huang,S,M,2025-10-06\n"

	records, warnings, err := ReadCustomers(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 2)
	assert.Equal(t, "11000", records[0].ID)
	assert.Equal(t, "Jon", records[0].FirstName)
	assert.Equal(t, "2025-10-06", records[1].CreateDate)
}

func TestReadRowsPadsShortRows(t *testing.T) {
	csv := "cid,cntry\n" +
		"AW-00011000\n" +
		"AW-00011001,USA\n"

	records, warnings, err := ReadErpLocations(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "", records[0].Country, "missing column padded empty")
	assert.Equal(t, "USA", records[1].Country)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Row)
}

func TestReadRowsTruncatesLongRows(t *testing.T) {
	csv := "cid,cntry\n" +
		"AW-00011000,USA,extra,columns\n"

	records, warnings, err := ReadErpLocations(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "USA", records[0].Country)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "truncating")
}

func TestReadRowsEmptyFile(t *testing.T) {
	_, _, err := ReadSales(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadRowsHeaderOnly(t *testing.T) {
	csv := "sls_ord_num,sls_prd_key,sls_cust_id,sls_order_dt,sls_ship_dt,sls_due_dt,sls_sales,sls_quantity,sls_price\n"
	records, warnings, err := ReadSales(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

func TestReadRowsStripsBOM(t *testing.T) {
	csv := "\xef\xbb\xbfid,cat,subcat,maintenance\n" +
		"AC_HE,Accessories,Helmets,Yes\n"

	records, _, err := ReadErpCategories(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AC_HE", records[0].ID)
}

func TestReadRowsQuotedFields(t *testing.T) {
	csv := "prd_id,prd_key,prd_nm,prd_cost,prd_line,prd_start_dt,prd_end_dt\n" +
		"210,CO-RF-FR-R92B-58,\"HL Road Frame, Black\",1059.31,R,2011-07-01,\n"

	records, warnings, err := ReadProducts(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)
	assert.Equal(t, "HL Road Frame, Black", records[0].Name)
}

func TestSourceSetPaths(t *testing.T) {
	s := SourceSet{Dir: "/data/extracts", CRMSubdir: "source_crm", ERPSubdir: "source_erp"}
	assert.Equal(t, "/data/extracts/source_crm/cust_info.csv", s.CRMPath(FileCustomers))
	assert.Equal(t, "/data/extracts/source_erp/loc_a101.csv", s.ERPPath(FileErpLocations))
}
