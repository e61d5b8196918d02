package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tcalc/formatter"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule library in the order rules are tried",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			logger.Error("Failed to load configuration", zap.String("path", cfgFile), zap.Error(err))
			return err
		}
		session, err := newSession(config, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRules(session.Rules()))
		return nil
	},
}
