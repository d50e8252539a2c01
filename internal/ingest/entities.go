package ingest

import (
	"io"
	"os"
	"path/filepath"

	"medallion/internal/common"
	"medallion/internal/normalize"
	"medallion/pkg/errors"
)

// Conventional extract file names, fixed upstream
const (
	FileCustomers     = "cust_info.csv"
	FileProducts      = "prd_info.csv"
	FileSales         = "sales_details.csv"
	FileErpCustomers  = "cust_az12.csv"
	FileErpLocations  = "loc_a101.csv"
	FileErpCategories = "px_cat_g1v2.csv"
)

// SourceSet resolves extract paths under a source directory with the
// conventional CRM/ERP subdirectory split
type SourceSet struct {
	Dir       string
	CRMSubdir string
	ERPSubdir string
}

// CRMPath returns the path of a CRM extract file
func (s SourceSet) CRMPath(name string) string {
	return filepath.Join(s.Dir, s.CRMSubdir, name)
}

// ERPPath returns the path of an ERP extract file
func (s SourceSet) ERPPath(name string) string {
	return filepath.Join(s.Dir, s.ERPSubdir, name)
}

// ReadCustomers parses the CRM customer extract
func ReadCustomers(r io.Reader) ([]normalize.RawCustomer, []Warning, error) {
	rows, warnings, err := readRows(r, 7)
	if err != nil {
		return nil, nil, err
	}
	out := make([]normalize.RawCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.RawCustomer{
			ID:            row[0],
			Key:           row[1],
			FirstName:     row[2],
			LastName:      row[3],
			MaritalStatus: row[4],
			Gender:        row[5],
			CreateDate:    row[6],
		})
	}
	return out, warnings, nil
}

// ReadProducts parses the CRM product extract
func ReadProducts(r io.Reader) ([]normalize.RawProduct, []Warning, error) {
	rows, warnings, err := readRows(r, 7)
	if err != nil {
		return nil, nil, err
	}
	out := make([]normalize.RawProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.RawProduct{
			ID:        row[0],
			Key:       row[1],
			Name:      row[2],
			Cost:      row[3],
			Line:      row[4],
			StartDate: row[5],
			EndDate:   row[6],
		})
	}
	return out, warnings, nil
}

// ReadSales parses the CRM sales extract
func ReadSales(r io.Reader) ([]normalize.RawSale, []Warning, error) {
	rows, warnings, err := readRows(r, 9)
	if err != nil {
		return nil, nil, err
	}
	out := make([]normalize.RawSale, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.RawSale{
			OrderNumber: row[0],
			ProductKey:  row[1],
			CustomerID:  row[2],
			OrderDate:   row[3],
			ShipDate:    row[4],
			DueDate:     row[5],
			Sales:       row[6],
			Quantity:    row[7],
			Price:       row[8],
		})
	}
	return out, warnings, nil
}

// ReadErpCustomers parses the ERP customer extract
func ReadErpCustomers(r io.Reader) ([]normalize.RawErpCustomer, []Warning, error) {
	rows, warnings, err := readRows(r, 3)
	if err != nil {
		return nil, nil, err
	}
	out := make([]normalize.RawErpCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.RawErpCustomer{
			ID:        row[0],
			BirthDate: row[1],
			Gender:    row[2],
		})
	}
	return out, warnings, nil
}

// ReadErpLocations parses the ERP location extract
func ReadErpLocations(r io.Reader) ([]normalize.RawErpLocation, []Warning, error) {
	rows, warnings, err := readRows(r, 2)
	if err != nil {
		return nil, nil, err
	}
	out := make([]normalize.RawErpLocation, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.RawErpLocation{
			ID:      row[0],
			Country: row[1],
		})
	}
	return out, warnings, nil
}

// ReadErpCategories parses the ERP category extract
func ReadErpCategories(r io.Reader) ([]normalize.RawErpCategory, []Warning, error) {
	rows, warnings, err := readRows(r, 4)
	if err != nil {
		return nil, nil, err
	}
	out := make([]normalize.RawErpCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.RawErpCategory{
			ID:          row[0],
			Category:    row[1],
			Subcategory: row[2],
			Maintenance: row[3],
		})
	}
	return out, warnings, nil
}

// Open validates and opens an extract file
func Open(path string) (*os.File, error) {
	cleaned, err := common.CleanPath(path)
	if err != nil {
		return nil, errors.SourceError("Invalid source path", path, err)
	}
	f, err := os.Open(cleaned) // #nosec G304 - path is validated
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSourceNotFound, "Source file not found").
				WithContext("path", cleaned).
				WithSuggestions(
					"Check the configured source directory",
					"Verify the extract file name matches the convention",
				)
		}
		return nil, errors.SourceError("Failed to open source file", cleaned, err)
	}
	return f, nil
}
