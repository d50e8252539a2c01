package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"medallion/internal/security"
	"medallion/internal/ui"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage stored warehouse credentials",
}

var credentialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored credential names",
	RunE:  runCredentialsList,
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runCredentialsDelete,
}

var credentialsDeleteForce bool

func runCredentialsList(cmd *cobra.Command, args []string) error {
	creds, err := security.NewCredentialManager()
	if err != nil {
		return err
	}

	names, err := creds.ListCredentials()
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	if len(names) == 0 {
		ui.PrintInfo("No credentials stored. Run 'medallion setup' to store one.")
		return nil
	}

	ui.PrintSection("Stored credentials")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func runCredentialsDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !credentialsDeleteForce {
		var confirm bool
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Delete credential %q?", name),
			Default: false,
		}
		survey.AskOne(prompt, &confirm)
		if !confirm {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	creds, err := security.NewCredentialManager()
	if err != nil {
		return err
	}
	if err := creds.DeleteCredential(name); err != nil {
		return fmt.Errorf("failed to delete credential %q: %w", name, err)
	}

	ui.PrintSuccess(fmt.Sprintf("Credential %q deleted", name))
	return nil
}

func init() {
	credentialsDeleteCmd.Flags().BoolVarP(&credentialsDeleteForce, "yes", "y", false, "Skip the confirmation prompt")

	credentialsCmd.AddCommand(credentialsListCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}
