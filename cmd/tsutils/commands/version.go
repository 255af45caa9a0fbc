package commands

import (
	"github.com/spf13/cobra"

	"github.com/tsutils/tsutils/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// Short: 显示版本信息
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.String())
	},
}
