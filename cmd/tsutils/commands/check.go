package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsutils/tsutils/internal/logrouter"
	"github.com/tsutils/tsutils/pkg/fileutil"
)

var checkCmd = &cobra.Command{
	Use:   "check <config-file>",
	Short: "Validate a logging configuration document",
	// Short: 校验日志配置文档
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := fileutil.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		cfg, err := logrouter.ParseConfig(data)
		if err != nil {
			return err
		}
		cmd.Printf("OK: %d formatter(s), %d handler(s), %d logger(s)\n",
			len(cfg.Formatters), len(cfg.Handlers), len(cfg.Loggers))
		return nil
	},
}
