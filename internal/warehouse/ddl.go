package warehouse

import (
	"context"
	"fmt"
)

// Silver-layer table names, one per source entity
const (
	TableCustomers     = "crm_cust_info"
	TableProducts      = "crm_prd_info"
	TableSales         = "crm_sales_details"
	TableErpCustomers  = "erp_cust_az12"
	TableErpLocations  = "erp_loc_a101"
	TableErpCategories = "erp_px_cat_g1v2"
)

// silverTables maps each silver table to its column definition. The
// dwh_create_date audit column is filled by Snowflake at insert time.
var silverTables = map[string]string{
	TableCustomers: `(
    cst_id             NUMBER,
    cst_key            VARCHAR,
    cst_firstname      VARCHAR,
    cst_lastname       VARCHAR,
    cst_marital_status VARCHAR,
    cst_gndr           VARCHAR,
    cst_create_date    DATE,
    dwh_create_date    TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP()
)`,
	TableProducts: `(
    prd_id          NUMBER,
    cat_id          VARCHAR,
    prd_key         VARCHAR,
    prd_nm          VARCHAR,
    prd_cost        NUMBER(18,4),
    prd_line        VARCHAR,
    prd_start_dt    DATE,
    prd_end_dt      DATE,
    dwh_create_date TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP()
)`,
	TableSales: `(
    sls_ord_num     VARCHAR,
    sls_prd_key     VARCHAR,
    sls_cust_id     NUMBER,
    sls_order_dt    DATE,
    sls_ship_dt     DATE,
    sls_due_dt      DATE,
    sls_sales       NUMBER(18,4),
    sls_quantity    NUMBER,
    sls_price       NUMBER(18,4),
    dwh_create_date TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP()
)`,
	TableErpCustomers: `(
    cid             VARCHAR,
    bdate           DATE,
    gen             VARCHAR,
    dwh_create_date TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP()
)`,
	TableErpLocations: `(
    cid             VARCHAR,
    cntry           VARCHAR,
    dwh_create_date TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP()
)`,
	TableErpCategories: `(
    id              VARCHAR,
    cat             VARCHAR,
    subcat          VARCHAR,
    maintenance     VARCHAR,
    dwh_create_date TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP()
)`,
}

// EnsureSilver creates the silver schema and its tables if they are missing
func (s *Service) EnsureSilver(ctx context.Context, schema string) error {
	statements := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s.%s", s.config.Database, schema),
	}
	for _, table := range []string{
		TableCustomers, TableProducts, TableSales,
		TableErpCustomers, TableErpLocations, TableErpCategories,
	} {
		statements = append(statements, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s.%s.%s %s",
			s.config.Database, schema, table, silverTables[table],
		))
	}
	return s.ExecAll(ctx, statements)
}
