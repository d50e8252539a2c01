package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"medallion/pkg/models"
)

// SetupWizard provides an interactive configuration setup
type SetupWizard struct {
	currentStep int
	totalSteps  int
}

// NewSetupWizard creates a new setup wizard
func NewSetupWizard() *SetupWizard {
	return &SetupWizard{
		currentStep: 1,
		totalSteps:  4,
	}
}

// Run executes the setup wizard and returns the assembled configuration
func (w *SetupWizard) Run() (*models.Config, error) {
	ShowHeader("Medallion - Configuration Setup")

	config := &models.Config{}

	steps := []func(*models.Config) error{
		w.configureSnowflakeStep,
		w.configureSourceStep,
		w.configureLoadStep,
	}
	for _, step := range steps {
		if err := step(config); err != nil {
			if err == terminal.InterruptErr {
				return nil, fmt.Errorf("configuration cancelled")
			}
			return nil, err
		}
	}

	config.ApplyDefaults()

	if err := w.reviewConfiguration(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (w *SetupWizard) configureSnowflakeStep(config *models.Config) error {
	w.showProgress("Snowflake Connection")

	questions := []*survey.Question{
		{
			Name: "account",
			Prompt: &survey.Input{
				Message: "Snowflake Account:",
				Help:    "Your Snowflake account identifier (e.g., xy12345.us-east-1)",
			},
			Validate: survey.Required,
		},
		{
			Name: "username",
			Prompt: &survey.Input{
				Message: "Username:",
				Help:    "Your Snowflake username",
			},
			Validate: survey.Required,
		},
		{
			Name: "password",
			Prompt: &survey.Password{
				Message: "Password:",
				Help:    "Your Snowflake password (will be stored securely)",
			},
			Validate: survey.Required,
		},
		{
			Name: "database",
			Prompt: &survey.Input{
				Message: "Database:",
				Default: "DWH",
				Help:    "Target database holding the bronze, silver and gold schemas",
			},
			Validate: survey.Required,
		},
		{
			Name: "warehouse",
			Prompt: &survey.Input{
				Message: "Warehouse:",
				Default: "COMPUTE_WH",
				Help:    "Warehouse to use for executing loads",
			},
			Validate: survey.Required,
		},
		{
			Name: "role",
			Prompt: &survey.Input{
				Message: "Role:",
				Default: "SYSADMIN",
				Help:    "Role to use for loads",
			},
			Validate: survey.Required,
		},
	}

	answers := struct {
		Account   string
		Username  string
		Password  string
		Database  string
		Warehouse string
		Role      string
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	config.Snowflake = models.Snowflake{
		Account:   answers.Account,
		Username:  answers.Username,
		Password:  answers.Password,
		Database:  answers.Database,
		Warehouse: answers.Warehouse,
		Role:      answers.Role,
	}

	w.currentStep++
	return nil
}

func (w *SetupWizard) configureSourceStep(config *models.Config) error {
	w.showProgress("Source Extracts")

	questions := []*survey.Question{
		{
			Name: "dir",
			Prompt: &survey.Input{
				Message: "Source Directory:",
				Default: "datasets",
				Help:    "Directory containing the CRM and ERP extract subdirectories",
			},
			Validate: survey.Required,
		},
		{
			Name: "crmSubdir",
			Prompt: &survey.Input{
				Message: "CRM Subdirectory:",
				Default: "source_crm",
				Help:    "Subdirectory with cust_info.csv, prd_info.csv and sales_details.csv",
			},
			Validate: survey.Required,
		},
		{
			Name: "erpSubdir",
			Prompt: &survey.Input{
				Message: "ERP Subdirectory:",
				Default: "source_erp",
				Help:    "Subdirectory with cust_az12.csv, loc_a101.csv and px_cat_g1v2.csv",
			},
			Validate: survey.Required,
		},
	}

	answers := struct {
		Dir       string
		CrmSubdir string
		ErpSubdir string
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	config.Source = models.Source{
		Dir:       answers.Dir,
		CRMSubdir: answers.CrmSubdir,
		ERPSubdir: answers.ErpSubdir,
	}

	w.currentStep++
	return nil
}

func (w *SetupWizard) configureLoadStep(config *models.Config) error {
	w.showProgress("Load Settings")

	useAdvanced := false
	prompt := &survey.Confirm{
		Message: "Configure load settings?",
		Default: false,
		Help:    "Batch size, timeout and schema names (defaults work for most setups)",
	}

	if err := survey.AskOne(prompt, &useAdvanced); err != nil {
		return err
	}

	if !useAdvanced {
		w.currentStep++
		return nil
	}

	questions := []*survey.Question{
		{
			Name: "batchSize",
			Prompt: &survey.Input{
				Message: "Insert Batch Size:",
				Default: "500",
				Help:    "Rows per INSERT statement",
			},
			Validate: func(val interface{}) error {
				s, ok := val.(string)
				if !ok {
					return fmt.Errorf("expected a number")
				}
				if _, err := strconv.Atoi(s); err != nil {
					return fmt.Errorf("must be a whole number")
				}
				return nil
			},
		},
		{
			Name: "timeout",
			Prompt: &survey.Input{
				Message: "Load Timeout:",
				Default: "30m",
				Help:    "Maximum duration for a full load (Go duration syntax)",
			},
		},
		{
			Name: "silverSchema",
			Prompt: &survey.Input{
				Message: "Silver Schema:",
				Default: "SILVER",
				Help:    "Schema receiving the cleansed tables",
			},
		},
		{
			Name: "goldSchema",
			Prompt: &survey.Input{
				Message: "Gold Schema:",
				Default: "GOLD",
				Help:    "Schema receiving the star-schema views",
			},
		},
	}

	answers := struct {
		BatchSize    string
		Timeout      string
		SilverSchema string
		GoldSchema   string
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	batch, _ := strconv.Atoi(answers.BatchSize)
	config.Load.BatchSize = batch
	config.Load.Timeout = answers.Timeout
	config.Warehouse.SilverSchema = answers.SilverSchema
	config.Warehouse.GoldSchema = answers.GoldSchema

	w.currentStep++
	return nil
}

func (w *SetupWizard) reviewConfiguration(config *models.Config) error {
	w.showProgress("Review Configuration")

	fmt.Println("\n" + ColorInfo("Configuration Summary:"))
	fmt.Println(strings.Repeat("─", 50))

	fmt.Println(ColorBold("\nSnowflake Settings:"))
	fmt.Printf("  Account:   %s\n", config.Snowflake.Account)
	fmt.Printf("  Username:  %s\n", config.Snowflake.Username)
	fmt.Printf("  Database:  %s\n", config.Snowflake.Database)
	fmt.Printf("  Warehouse: %s\n", config.Snowflake.Warehouse)
	fmt.Printf("  Role:      %s\n", config.Snowflake.Role)

	fmt.Println(ColorBold("\nSource Settings:"))
	fmt.Printf("  Directory: %s\n", config.Source.Dir)
	fmt.Printf("  CRM:       %s\n", config.Source.CRMSubdir)
	fmt.Printf("  ERP:       %s\n", config.Source.ERPSubdir)

	fmt.Println(ColorBold("\nLoad Settings:"))
	fmt.Printf("  Batch size: %d\n", config.Load.BatchSize)
	fmt.Printf("  Schemas:    %s / %s / %s\n",
		config.Warehouse.BronzeSchema,
		config.Warehouse.SilverSchema,
		config.Warehouse.GoldSchema)

	fmt.Println(strings.Repeat("─", 50))

	confirm := false
	prompt := &survey.Confirm{
		Message: "Save this configuration?",
		Default: true,
	}

	if err := survey.AskOne(prompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("configuration cancelled")
	}

	return nil
}

func (w *SetupWizard) showProgress(step string) {
	fmt.Printf("\n%s [Step %d/%d] %s\n\n",
		ColorProgress("►"),
		w.currentStep,
		w.totalSteps,
		ColorBold(step),
	)
}
