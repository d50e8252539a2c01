package warehouse

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medallion/pkg/errors"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Account:   "xy12345.us-east-1",
		Username:  "loader",
		Password:  "secret",
		Warehouse: "LOAD_WH",
		Database:  "DWH",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing account", func(c *Config) { c.Account = "" }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"missing warehouse", func(c *Config) { c.Warehouse = "" }},
		{"missing database", func(c *Config) { c.Database = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetErrorCode(err))
		})
	}
}

func TestExecRequiresConnection(t *testing.T) {
	svc := NewService(Config{Database: "DWH"})
	err := svc.Exec(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConnectionFailed, errors.GetErrorCode(err))
}

func TestExecAllStopsOnFirstFailure(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("CREATE SCHEMA").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnError(assert.AnError)

	err := svc.ExecAll(context.Background(), []string{
		"CREATE SCHEMA IF NOT EXISTS DWH.SILVER",
		"CREATE TABLE IF NOT EXISTS DWH.SILVER.t (x NUMBER)",
		"CREATE TABLE IF NOT EXISTS DWH.SILVER.u (y NUMBER)",
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSilverCreatesSchemaAndTables(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS DWH.SILVER").
		WillReturnResult(sqlmock.NewResult(0, 0))
	for i := 0; i < 6; i++ {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS DWH.SILVER").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	err := svc.EnsureSilver(context.Background(), "SILVER")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshGoldCreatesViews(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS DWH.GOLD").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE OR REPLACE VIEW DWH.GOLD.dim_customers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE OR REPLACE VIEW DWH.GOLD.dim_products").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE OR REPLACE VIEW DWH.GOLD.fact_sales").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.RefreshGold(context.Background(), "GOLD", "SILVER")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
