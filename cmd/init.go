package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tcalc/calc"
)

// initCmd: tcalc init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new calculator configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}

func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = calc.DefaultConfigPath
	}
	return configurationPath, calc.WriteConfig(configurationPath, calc.DefaultConfig())
}
