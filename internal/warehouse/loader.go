package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"medallion/internal/normalize"
	"medallion/pkg/errors"
)

// Loader writes cleaned records into the silver tables with full-table
// replace semantics: each entity is truncated and reinserted inside one
// transaction, so a failed run leaves the previous load intact.
type Loader struct {
	svc       *Service
	schema    string
	batchSize int
}

// NewLoader creates a loader targeting a silver schema
func NewLoader(svc *Service, schema string, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Loader{svc: svc, schema: schema, batchSize: batchSize}
}

// LoadCustomers replaces the silver customer table
func (l *Loader) LoadCustomers(ctx context.Context, records []normalize.Customer) (int, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID, r.Key, r.FirstName, r.LastName,
			r.MaritalStatus, r.Gender, dayValue(r.CreateDate),
		})
	}
	return l.replaceAll(ctx, TableCustomers, []string{
		"cst_id", "cst_key", "cst_firstname", "cst_lastname",
		"cst_marital_status", "cst_gndr", "cst_create_date",
	}, rows)
}

// LoadProducts replaces the silver product table
func (l *Loader) LoadProducts(ctx context.Context, records []normalize.Product) (int, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			intValue(r.ID), r.CategoryID, r.Key, r.Name,
			decValue(r.Cost), r.Line, dayValue(r.StartDate), dayValue(r.EndDate),
		})
	}
	return l.replaceAll(ctx, TableProducts, []string{
		"prd_id", "cat_id", "prd_key", "prd_nm",
		"prd_cost", "prd_line", "prd_start_dt", "prd_end_dt",
	}, rows)
}

// LoadSales replaces the silver sales table
func (l *Loader) LoadSales(ctx context.Context, records []normalize.Sale) (int, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.OrderNumber, r.ProductKey, intValue(r.CustomerID),
			dateValue(r.OrderDate), dateValue(r.ShipDate), dateValue(r.DueDate),
			decValue(r.Sales), intValue(r.Quantity), decValue(r.Price),
		})
	}
	return l.replaceAll(ctx, TableSales, []string{
		"sls_ord_num", "sls_prd_key", "sls_cust_id",
		"sls_order_dt", "sls_ship_dt", "sls_due_dt",
		"sls_sales", "sls_quantity", "sls_price",
	}, rows)
}

// LoadErpCustomers replaces the silver ERP customer table
func (l *Loader) LoadErpCustomers(ctx context.Context, records []normalize.ErpCustomer) (int, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.ID, dayValue(r.BirthDate), r.Gender})
	}
	return l.replaceAll(ctx, TableErpCustomers, []string{"cid", "bdate", "gen"}, rows)
}

// LoadErpLocations replaces the silver ERP location table
func (l *Loader) LoadErpLocations(ctx context.Context, records []normalize.ErpLocation) (int, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.ID, r.Country})
	}
	return l.replaceAll(ctx, TableErpLocations, []string{"cid", "cntry"}, rows)
}

// LoadErpCategories replaces the silver ERP category table
func (l *Loader) LoadErpCategories(ctx context.Context, records []normalize.ErpCategory) (int, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.ID, r.Category, r.Subcategory, r.Maintenance})
	}
	return l.replaceAll(ctx, TableErpCategories, []string{"id", "cat", "subcat", "maintenance"}, rows)
}

// replaceAll truncates the target table and reinserts every row in batches,
// all inside a single transaction
func (l *Loader) replaceAll(ctx context.Context, table string, columns []string, rows [][]interface{}) (int, error) {
	qualified := fmt.Sprintf("%s.%s.%s", l.svc.Database(), l.schema, table)

	tx, err := l.svc.BeginTx(ctx)
	if err != nil {
		return 0, err
	}

	inserted := 0
	handler := errors.NewTransactionHandler(tx.Rollback)
	err = handler.Execute(func() error {
		truncate := fmt.Sprintf("TRUNCATE TABLE %s", qualified)
		if _, err := tx.ExecContext(ctx, truncate); err != nil {
			return errors.SQLError("Failed to truncate table", truncate, err).
				WithContext("table", qualified)
		}

		for start := 0; start < len(rows); start += l.batchSize {
			end := start + l.batchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]

			query, args := buildInsert(qualified, columns, batch)
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.SQLError("Failed to insert batch", query, err).
					WithContext("table", qualified).
					WithContext("batch_start", start)
			}
			inserted += len(batch)
		}

		if err := tx.Commit(); err != nil {
			return errors.Wrap(err, errors.ErrCodeSQLTransaction, "Failed to commit load")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// buildInsert assembles a multi-row INSERT with positional placeholders
func buildInsert(table string, columns []string, rows [][]interface{}) (string, []interface{}) {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"

	values := make([]string, len(rows))
	args := make([]interface{}, 0, len(rows)*len(columns))
	for i, row := range rows {
		values[i] = placeholder
		args = append(args, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(values, ", "))
	return query, args
}

// Conversion helpers: nil pointers become SQL NULLs

func intValue(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func decValue(v *decimal.Decimal) interface{} {
	if v == nil {
		return nil
	}
	return v.String()
}

func dayValue(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return v.Format("2006-01-02")
}

func dateValue(v *normalize.Date) interface{} {
	if v == nil {
		return nil
	}
	return v.String()
}
