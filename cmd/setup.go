package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"medallion/internal/config"
	"medallion/internal/security"
	"medallion/internal/ui"
)

// Keyring entry holding the Snowflake password
const passwordCredential = "snowflake-password"

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration setup",
	Run:   runSetup,
}

func runSetup(cmd *cobra.Command, args []string) {
	ui.ShowLogo()

	if config.Exists() {
		var overwrite bool
		prompt := &survey.Confirm{
			Message: "Configuration already exists. Do you want to overwrite it?",
			Default: false,
		}
		survey.AskOne(prompt, &overwrite)
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return
		}
	}

	wizard := ui.NewSetupWizard()
	cfg, err := wizard.Run()
	if err != nil {
		ui.PrintError(err)
		os.Exit(1)
	}

	// Keep the password out of the config file when secure storage works
	creds, err := security.NewCredentialManager()
	if err == nil {
		storeErr := creds.StoreCredential(passwordCredential, "password", cfg.Snowflake.Password, map[string]string{
			"account":  cfg.Snowflake.Account,
			"username": cfg.Snowflake.Username,
		})
		if storeErr == nil {
			cfg.Snowflake.Password = ""
		} else {
			ui.PrintWarning(fmt.Sprintf("Secure storage unavailable, password kept in config file: %v", storeErr))
		}
	} else {
		ui.PrintWarning(fmt.Sprintf("Secure storage unavailable, password kept in config file: %v", err))
	}

	if err := config.Save(cfg); err != nil {
		ui.PrintError(err)
		os.Exit(1)
	}

	fmt.Println()
	ui.PrintSuccess(fmt.Sprintf("Configuration saved to %s", config.GetConfigFile()))
	fmt.Println()
	fmt.Println("You can now run a full load using: medallion load")
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
