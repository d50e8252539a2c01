package normalize

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw records mirror the bronze-layer CSV columns one to one. Every field is
// the unparsed string exactly as read; parsing and coercion happen in the
// cleansing pass, never at read time.

// RawCustomer is a row from the CRM customer extract (cust_info.csv)
type RawCustomer struct {
	ID            string // cst_id
	Key           string // cst_key
	FirstName     string // cst_firstname
	LastName      string // cst_lastname
	MaritalStatus string // cst_marital_status
	Gender        string // cst_gndr
	CreateDate    string // cst_create_date
}

// RawProduct is a row from the CRM product extract (prd_info.csv)
type RawProduct struct {
	ID        string // prd_id
	Key       string // prd_key, compound: category code + '-' + key remainder
	Name      string // prd_nm
	Cost      string // prd_cost
	Line      string // prd_line
	StartDate string // prd_start_dt
	EndDate   string // prd_end_dt, recomputed during cleansing
}

// RawSale is a row from the CRM sales extract (sales_details.csv)
type RawSale struct {
	OrderNumber string // sls_ord_num
	ProductKey  string // sls_prd_key
	CustomerID  string // sls_cust_id
	OrderDate   string // sls_order_dt, 8-digit integer encoding
	ShipDate    string // sls_ship_dt
	DueDate     string // sls_due_dt
	Sales       string // sls_sales
	Quantity    string // sls_quantity
	Price       string // sls_price
}

// RawErpCustomer is a row from the ERP customer extract (cust_az12.csv)
type RawErpCustomer struct {
	ID        string // cid, may carry a "NAS" prefix
	BirthDate string // bdate
	Gender    string // gen, free text
}

// RawErpLocation is a row from the ERP location extract (loc_a101.csv)
type RawErpLocation struct {
	ID      string // cid, may carry punctuation
	Country string // cntry
}

// RawErpCategory is a row from the ERP category extract (px_cat_g1v2.csv)
type RawErpCategory struct {
	ID          string // id
	Category    string // cat
	Subcategory string // subcat
	Maintenance string // maintenance
}

// Clean records are the silver-layer shapes. Nullable columns are pointers;
// nil means SQL NULL on load.

// Customer is a cleansed, deduplicated CRM customer
type Customer struct {
	ID            int64
	Key           string
	FirstName     string
	LastName      string
	MaritalStatus string
	Gender        string
	CreateDate    *time.Time
}

// Product is a cleansed CRM product with derived keys and validity range
type Product struct {
	ID         *int64
	CategoryID string
	Key        string
	Name       string
	Cost       *decimal.Decimal
	Line       string
	StartDate  *time.Time
	EndDate    *time.Time // nil for the current (chronologically last) version
}

// Sale is a cleansed CRM sales order line
type Sale struct {
	OrderNumber string
	ProductKey  string
	CustomerID  *int64
	OrderDate   *Date
	ShipDate    *Date
	DueDate     *Date
	Sales       *decimal.Decimal
	Quantity    *int64
	Price       *decimal.Decimal
}

// ErpCustomer is a cleansed ERP customer demographics row
type ErpCustomer struct {
	ID        string
	BirthDate *time.Time
	Gender    string
}

// ErpLocation is a cleansed ERP customer location row
type ErpLocation struct {
	ID      string
	Country string
}

// ErpCategory is a cleansed ERP product category row
type ErpCategory struct {
	ID          string
	Category    string
	Subcategory string
	Maintenance string
}
