package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"medallion/internal/config"
	"medallion/internal/ingest"
	"medallion/internal/pipeline"
	"medallion/internal/security"
	"medallion/internal/ui"
	"medallion/internal/warehouse"
	"medallion/pkg/errors"
	"medallion/pkg/models"
)

var (
	loadSourceDir string
	loadEntities  []string
	loadDryRun    bool
	loadBatchSize int
	loadVerbose   bool
	loadQuiet     bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Cleanse the source extracts and load the warehouse",
	Long: `Read the CRM and ERP extract files, apply the cleansing rules, replace
the silver tables and refresh the gold star-schema views.`,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyViperOverrides(cfg)

	if loadSourceDir != "" {
		cfg.Source.Dir = loadSourceDir
	}
	if loadBatchSize > 0 {
		cfg.Load.BatchSize = loadBatchSize
	}
	if cfg.Source.Dir == "" {
		return errors.ConfigError("source directory is not configured", "source.dir").
			WithSuggestions("Run 'medallion setup'", "Pass --source-dir")
	}

	console := ui.NewUI(loadVerbose, loadQuiet)
	dryRun := loadDryRun || cfg.Load.DryRun

	if loadVerbose && !loadQuiet {
		ui.PrintSection("Run configuration")
		ui.PrintKeyValue("Source", cfg.Source.Dir)
		ui.PrintKeyValue("Database", cfg.Snowflake.Database)
		ui.PrintKeyValue("Silver schema", cfg.Warehouse.SilverSchema)
		ui.PrintKeyValue("Gold schema", cfg.Warehouse.GoldSchema)
		ui.PrintKeyValue("Batch size", fmt.Sprintf("%d", cfg.Load.BatchSize))
	}

	sources := ingest.SourceSet{
		Dir:       cfg.Source.Dir,
		CRMSubdir: cfg.Source.CRMSubdir,
		ERPSubdir: cfg.Source.ERPSubdir,
	}

	var loader pipeline.SilverLoader
	var schemas pipeline.SchemaManager
	if !dryRun {
		svc, err := connectWarehouse(cfg, console)
		if err != nil {
			return err
		}
		defer svc.Close()

		loader = warehouse.NewLoader(svc, cfg.Warehouse.SilverSchema, cfg.Load.BatchSize)
		schemas = svc
	}

	ctx := context.Background()
	if cfg.Load.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Load.Timeout)
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid timeout %q", cfg.Load.Timeout), "load.timeout")
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runner := pipeline.NewRunner(sources, loader, schemas,
		cfg.Warehouse.SilverSchema, cfg.Warehouse.GoldSchema, console)

	result, err := runner.Run(ctx, pipeline.Options{
		Entities: loadEntities,
		DryRun:   dryRun,
	})
	if err != nil {
		return err
	}

	if !loadQuiet {
		useColor := isatty.IsTerminal(os.Stdout.Fd())
		report := ui.NewRunReport(useColor)
		fmt.Println()
		fmt.Print(report.Render(result.Entities))
		if result.Failed() {
			fmt.Print(report.RenderFailures(result.Entities))
		}
	}

	if result.Failed() {
		return fmt.Errorf("load finished with failures")
	}
	if dryRun {
		console.Success("Dry run completed, warehouse untouched")
	} else {
		console.Success(fmt.Sprintf("Load completed in %s", result.Duration.Round(time.Millisecond)))
	}
	return nil
}

// applyViperOverrides layers values from a config file discovered by viper
// (the working directory first, then ~/.medallion) over the stored
// configuration. CLI flags are applied after and win over both.
func applyViperOverrides(cfg *models.Config) {
	if v := viper.GetString("source.dir"); v != "" {
		cfg.Source.Dir = v
	}
	if v := viper.GetString("snowflake.account"); v != "" {
		cfg.Snowflake.Account = v
	}
	if v := viper.GetString("snowflake.username"); v != "" {
		cfg.Snowflake.Username = v
	}
	if v := viper.GetString("snowflake.role"); v != "" {
		cfg.Snowflake.Role = v
	}
	if v := viper.GetString("snowflake.warehouse"); v != "" {
		cfg.Snowflake.Warehouse = v
	}
	if v := viper.GetString("snowflake.database"); v != "" {
		cfg.Snowflake.Database = v
	}
	if v := viper.GetInt("load.batch_size"); v > 0 {
		cfg.Load.BatchSize = v
	}
}

// buildWarehouseConfig maps the stored settings to a connection config,
// parsing the optional connect timeout
func buildWarehouseConfig(cfg *models.Config, password string) (warehouse.Config, error) {
	wcfg := warehouse.Config{
		Account:   cfg.Snowflake.Account,
		Username:  cfg.Snowflake.Username,
		Password:  password,
		Role:      cfg.Snowflake.Role,
		Warehouse: cfg.Snowflake.Warehouse,
		Database:  cfg.Snowflake.Database,
	}
	if cfg.Snowflake.ConnectTimeout != "" {
		timeout, err := time.ParseDuration(cfg.Snowflake.ConnectTimeout)
		if err != nil {
			return warehouse.Config{}, errors.ConfigError(
				fmt.Sprintf("invalid connect timeout %q", cfg.Snowflake.ConnectTimeout),
				"snowflake.connect_timeout")
		}
		wcfg.Timeout = timeout
	}
	return wcfg, nil
}

// connectWarehouse resolves the password and opens the Snowflake connection
func connectWarehouse(cfg *models.Config, console *ui.UI) (*warehouse.Service, error) {
	password := cfg.Snowflake.Password
	if password == "" {
		creds, err := security.NewCredentialManager()
		if err == nil {
			if cred, err := creds.GetCredential(passwordCredential); err == nil {
				password = cred.Value
			}
		}
	}

	wcfg, err := buildWarehouseConfig(cfg, password)
	if err != nil {
		return nil, err
	}
	if err := wcfg.Validate(); err != nil {
		return nil, err
	}

	console.StartProgress("Connecting to Snowflake")
	svc := warehouse.NewService(wcfg)
	err = svc.Connect()
	console.StopProgress()
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func init() {
	loadCmd.Flags().StringVarP(&loadSourceDir, "source-dir", "s", "", "Directory containing the extract subdirectories")
	loadCmd.Flags().StringSliceVarP(&loadEntities, "entity", "e", nil,
		fmt.Sprintf("Entities to load (default all): %v", pipeline.AllEntities))
	loadCmd.Flags().BoolVar(&loadDryRun, "dry-run", false, "Read and normalize only, skip the warehouse")
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0, "Rows per INSERT statement")
	loadCmd.Flags().BoolVarP(&loadVerbose, "verbose", "v", false, "Show per-row warnings")
	loadCmd.Flags().BoolVarP(&loadQuiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(loadCmd)
}
