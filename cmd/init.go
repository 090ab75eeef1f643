package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize jsonmapper configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the proposal provider and file locations, and writes a .jsonmapper.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
