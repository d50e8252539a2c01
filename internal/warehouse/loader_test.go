package warehouse

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medallion/internal/normalize"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewServiceWithDB(db, Config{Database: "DWH"})
	return svc, mock
}

func TestLoadErpLocationsTruncateThenInsert(t *testing.T) {
	svc, mock := newTestService(t)
	loader := NewLoader(svc, "SILVER", 500)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE DWH.SILVER.erp_loc_a101")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO DWH.SILVER.erp_loc_a101 (cid, cntry) VALUES (?,?), (?,?)")).
		WithArgs("AW00011000", "United States", "AW00011001", "Germany").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := loader.LoadErpLocations(context.Background(), []normalize.ErpLocation{
		{ID: "AW00011000", Country: "United States"},
		{ID: "AW00011001", Country: "Germany"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadBatching(t *testing.T) {
	svc, mock := newTestService(t)
	loader := NewLoader(svc, "SILVER", 2)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	// Three rows with batch size two means two INSERT statements
	mock.ExpectExec("INSERT INTO").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	records := []normalize.ErpCategory{
		{ID: "AC_HE", Category: "Accessories", Subcategory: "Helmets", Maintenance: "No"},
		{ID: "CO_RF", Category: "Components", Subcategory: "Road Frames", Maintenance: "Yes"},
		{ID: "CL_BI", Category: "Clothing", Subcategory: "Bib-Shorts", Maintenance: "No"},
	}
	n, err := loader.LoadErpCategories(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRollsBackOnFailure(t *testing.T) {
	svc, mock := newTestService(t)
	loader := NewLoader(svc, "SILVER", 500)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO").WillReturnError(fmt.Errorf("insert failed"))
	mock.ExpectRollback()

	_, err := loader.LoadErpLocations(context.Background(), []normalize.ErpLocation{
		{ID: "AW00011000", Country: "United States"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadEmptyInputStillTruncates(t *testing.T) {
	svc, mock := newTestService(t)
	loader := NewLoader(svc, "SILVER", 500)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := loader.LoadErpLocations(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSalesNullHandling(t *testing.T) {
	svc, mock := newTestService(t)
	loader := NewLoader(svc, "SILVER", 500)

	qty := int64(2)
	sales := mustDecimal("50")
	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO").
		WithArgs("SO43697", "BK-R93R-62", nil,
			"2024-01-15", nil, nil,
			"50", qty, "25").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	price := mustDecimal("25")
	n, err := loader.LoadSales(context.Background(), []normalize.Sale{{
		OrderNumber: "SO43697",
		ProductKey:  "BK-R93R-62",
		OrderDate:   &normalize.Date{Year: 2024, Month: 1, Day: 15},
		Sales:       sales,
		Quantity:    &qty,
		Price:       price,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadCustomersDateFormatting(t *testing.T) {
	svc, mock := newTestService(t)
	loader := NewLoader(svc, "SILVER", 500)

	created := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO").
		WithArgs(int64(11000), "AW00011000", "Jon", "Yang", "Married", "Male", "2025-10-06").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := loader.LoadCustomers(context.Background(), []normalize.Customer{{
		ID: 11000, Key: "AW00011000", FirstName: "Jon", LastName: "Yang",
		MaritalStatus: "Married", Gender: "Male", CreateDate: &created,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildInsert(t *testing.T) {
	query, args := buildInsert("DWH.SILVER.t", []string{"a", "b"}, [][]interface{}{
		{1, "x"},
		{2, "y"},
	})
	assert.Equal(t, "INSERT INTO DWH.SILVER.t (a, b) VALUES (?,?), (?,?)", query)
	assert.Equal(t, []interface{}{1, "x", 2, "y"}, args)
}
