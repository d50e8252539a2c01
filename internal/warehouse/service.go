package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/snowflakedb/gosnowflake"
	"medallion/pkg/errors"
)

// Config holds Snowflake connection configuration
type Config struct {
	Account   string
	Username  string
	Password  string
	Role      string
	Warehouse string
	Database  string
	Timeout   time.Duration
}

// Validate checks that the required connection fields are present
func (c Config) Validate() error {
	if c.Account == "" {
		return errors.ConfigError("account is required", "snowflake.account")
	}
	if c.Username == "" {
		return errors.ConfigError("username is required", "snowflake.username")
	}
	if c.Password == "" {
		return errors.ConfigError("password is required", "snowflake.password")
	}
	if c.Warehouse == "" {
		return errors.ConfigError("warehouse is required", "snowflake.warehouse")
	}
	if c.Database == "" {
		return errors.ConfigError("database is required", "snowflake.database")
	}
	return nil
}

// Service provides Snowflake database operations for the warehouse layers
type Service struct {
	db        *sql.DB
	config    Config
	connected bool
}

// NewService creates a new Snowflake service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// NewServiceWithDB wraps an existing database handle; used by tests
func NewServiceWithDB(db *sql.DB, config Config) *Service {
	return &Service{db: db, config: config, connected: true}
}

// Connect establishes a connection to Snowflake
func (s *Service) Connect() error {
	if s.connected {
		return nil
	}

	return errors.RetryWithBackoff(context.Background(), func(ctx context.Context) error {
		dsn := fmt.Sprintf("%s:%s@%s/%s?warehouse=%s&role=%s",
			s.config.Username,
			s.config.Password,
			s.config.Account,
			s.config.Database,
			s.config.Warehouse,
			s.config.Role,
		)

		db, err := sql.Open("snowflake", dsn)
		if err != nil {
			return errors.ConnectionError("Failed to open Snowflake connection", err).
				WithContext("account", s.config.Account).
				WithContext("warehouse", s.config.Warehouse)
		}

		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(10 * time.Minute)

		connCtx, cancel := s.getContext()
		defer cancel()

		if err := db.PingContext(connCtx); err != nil {
			db.Close()

			if strings.Contains(err.Error(), "authentication") {
				return errors.New(errors.ErrCodeAuthenticationFailed, "Authentication failed").
					WithContext("user", s.config.Username).
					WithSuggestions(
						"Verify your username and password",
						"Check if your account is locked",
						"Run 'medallion setup' to update stored credentials",
					)
			}

			return errors.ConnectionError("Failed to connect to Snowflake", err).
				WithContext("account", s.config.Account).
				AsRecoverable()
		}

		s.db = db
		s.connected = true
		return nil
	})
}

// Close closes the database connection
func (s *Service) Close() error {
	if !s.connected {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	s.connected = false
	return nil
}

// Exec runs a single statement
func (s *Service) Exec(ctx context.Context, query string, args ...interface{}) error {
	if !s.connected {
		return errors.New(errors.ErrCodeConnectionFailed, "Not connected to database").
			WithSuggestions("Call Connect() before executing SQL")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.SQLError("Failed to execute statement", query, err)
	}
	return nil
}

// ExecAll runs a sequence of standalone statements (DDL)
func (s *Service) ExecAll(ctx context.Context, statements []string) error {
	for _, stmt := range statements {
		if err := s.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// BeginTx starts a transaction
func (s *Service) BeginTx(ctx context.Context) (*sql.Tx, error) {
	if !s.connected {
		return nil, errors.New(errors.ErrCodeConnectionFailed, "Not connected to database")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSQLTransaction, "Failed to begin transaction")
	}
	return tx, nil
}

// TestConnection connects if needed and pings the database
func (s *Service) TestConnection() error {
	if !s.connected {
		if err := s.Connect(); err != nil {
			return err
		}
	}
	ctx, cancel := s.getContext()
	defer cancel()
	return s.db.PingContext(ctx)
}

// Database returns the configured database name
func (s *Service) Database() string {
	return s.config.Database
}

func (s *Service) getContext() (context.Context, context.CancelFunc) {
	timeout := s.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
