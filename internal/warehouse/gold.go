package warehouse

import (
	"context"
	"fmt"
)

// Gold-layer view names
const (
	ViewDimCustomers = "dim_customers"
	ViewDimProducts  = "dim_products"
	ViewFactSales    = "fact_sales"
)

// RefreshGold recreates the star-schema views over the silver tables.
// Views are cheap to replace, so a refresh is a full CREATE OR REPLACE of
// all three.
func (s *Service) RefreshGold(ctx context.Context, goldSchema, silverSchema string) error {
	db := s.config.Database
	silver := func(table string) string {
		return fmt.Sprintf("%s.%s.%s", db, silverSchema, table)
	}

	statements := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s.%s", db, goldSchema),

		fmt.Sprintf(`CREATE OR REPLACE VIEW %s.%s.%s AS
SELECT
    ROW_NUMBER() OVER (ORDER BY ci.cst_id) AS customer_key,
    ci.cst_id                              AS customer_id,
    ci.cst_key                             AS customer_number,
    ci.cst_firstname                       AS first_name,
    ci.cst_lastname                        AS last_name,
    la.cntry                               AS country,
    ci.cst_marital_status                  AS marital_status,
    CASE WHEN ci.cst_gndr != 'n/a' THEN ci.cst_gndr
         ELSE COALESCE(ca.gen, 'n/a')
    END                                    AS gender,
    ca.bdate                               AS birthdate,
    ci.cst_create_date                     AS create_date
FROM %s ci
LEFT JOIN %s ca ON ci.cst_key = ca.cid
LEFT JOIN %s la ON ci.cst_key = la.cid`,
			db, goldSchema, ViewDimCustomers,
			silver(TableCustomers), silver(TableErpCustomers), silver(TableErpLocations)),

		fmt.Sprintf(`CREATE OR REPLACE VIEW %s.%s.%s AS
SELECT
    ROW_NUMBER() OVER (ORDER BY pn.prd_start_dt, pn.prd_key) AS product_key,
    pn.prd_id       AS product_id,
    pn.prd_key      AS product_number,
    pn.prd_nm       AS product_name,
    pn.cat_id       AS category_id,
    pc.cat          AS category,
    pc.subcat       AS subcategory,
    pc.maintenance  AS maintenance,
    pn.prd_cost     AS cost,
    pn.prd_line     AS product_line,
    pn.prd_start_dt AS start_date
FROM %s pn
LEFT JOIN %s pc ON pn.cat_id = pc.id
WHERE pn.prd_end_dt IS NULL`,
			db, goldSchema, ViewDimProducts,
			silver(TableProducts), silver(TableErpCategories)),

		fmt.Sprintf(`CREATE OR REPLACE VIEW %s.%s.%s AS
SELECT
    sd.sls_ord_num  AS order_number,
    pr.product_key  AS product_key,
    cu.customer_key AS customer_key,
    sd.sls_order_dt AS order_date,
    sd.sls_ship_dt  AS shipping_date,
    sd.sls_due_dt   AS due_date,
    sd.sls_sales    AS sales_amount,
    sd.sls_quantity AS quantity,
    sd.sls_price    AS price
FROM %s sd
LEFT JOIN %s.%s.%s pr ON sd.sls_prd_key = pr.product_number
LEFT JOIN %s.%s.%s cu ON sd.sls_cust_id = cu.customer_id`,
			db, goldSchema, ViewFactSales,
			silver(TableSales),
			db, goldSchema, ViewDimProducts,
			db, goldSchema, ViewDimCustomers),
	}

	return s.ExecAll(ctx, statements)
}
