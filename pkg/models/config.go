package models

type Config struct {
	Snowflake Snowflake `yaml:"snowflake"`
	Source    Source    `yaml:"source"`
	Warehouse Warehouse `yaml:"warehouse"`
	Load      Load      `yaml:"load"`
}

type Snowflake struct {
	Account        string `yaml:"account"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Role           string `yaml:"role"`
	Warehouse      string `yaml:"warehouse"`
	Database       string `yaml:"database"`
	ConnectTimeout string `yaml:"connect_timeout"` // e.g. "45s", empty uses the driver default
}

// Source describes where the raw CSV extracts live.
type Source struct {
	Dir       string `yaml:"dir"`        // Directory containing the extract files
	CRMSubdir string `yaml:"crm_subdir"` // Subdirectory for CRM extracts (default "source_crm")
	ERPSubdir string `yaml:"erp_subdir"` // Subdirectory for ERP extracts (default "source_erp")
}

// Warehouse names the three layer schemas inside the target database.
type Warehouse struct {
	BronzeSchema string `yaml:"bronze_schema"` // default "BRONZE"
	SilverSchema string `yaml:"silver_schema"` // default "SILVER"
	GoldSchema   string `yaml:"gold_schema"`   // default "GOLD"
}

// Load contains load-specific configuration
type Load struct {
	BatchSize int    `yaml:"batch_size"` // Rows per INSERT statement
	Timeout   string `yaml:"timeout"`    // e.g. "30m"
	DryRun    bool   `yaml:"dry_run"`    // Normalize only, skip Snowflake
}

// ApplyDefaults fills in the zero-value fields that have conventional defaults
func (c *Config) ApplyDefaults() {
	if c.Source.CRMSubdir == "" {
		c.Source.CRMSubdir = "source_crm"
	}
	if c.Source.ERPSubdir == "" {
		c.Source.ERPSubdir = "source_erp"
	}
	if c.Warehouse.BronzeSchema == "" {
		c.Warehouse.BronzeSchema = "BRONZE"
	}
	if c.Warehouse.SilverSchema == "" {
		c.Warehouse.SilverSchema = "SILVER"
	}
	if c.Warehouse.GoldSchema == "" {
		c.Warehouse.GoldSchema = "GOLD"
	}
	if c.Load.BatchSize <= 0 {
		c.Load.BatchSize = 500
	}
}
