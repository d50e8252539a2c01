package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"medallion/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "medallion",
	Short: "Load CRM and ERP extracts into a Snowflake warehouse",
	Long: "Medallion - A CLI tool that cleanses raw CRM and ERP extracts into a " +
		"silver layer and publishes star-schema views on top",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(fmt.Sprintf("%s/.medallion", home))
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay; setup creates it
	}
}
