package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsutils/tsutils/internal/logrouter"
	"github.com/tsutils/tsutils/pkg/fileutil"
)

var (
	rootDir    string
	configPath string
)

var RootCmd = &cobra.Command{
	Use:   "tsutils",
	Short: "Utilities for scraping tools: routed logging, config checks",
	// Short: 抓取工具的实用程序：路由日志、配置检查
	Long: `tsutils wires the routed tsutils logging configuration (console plus
verbose/concise/error rotating files) and offers small helpers around it.
tsutils 负责装配路由式 tsutils 日志配置（console 加 verbose/concise/error
轮转文件），并提供围绕它的小工具。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Build the logging context once and inject it for subcommands.
		// 构建一次日志上下文并注入给子命令。
		cfg := logrouter.DefaultConfig()
		if configPath != "" {
			data, err := fileutil.ReadFile(configPath)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			if cfg, err = logrouter.ParseConfig(data); err != nil {
				return err
			}
		}
		lc, err := logrouter.Load(cfg, rootDir)
		if err != nil {
			return err
		}
		cmd.SetContext(logrouter.WithContext(cmd.Context(), lc))
		return nil
	},
}

func init() {
	// Root directory {ROOT_DIR} resolves to / {ROOT_DIR} 解析到的根目录
	RootCmd.PersistentFlags().StringVar(&rootDir, "root-dir", ".", "Directory the {ROOT_DIR} placeholder resolves to")

	// Optional custom logging config document / 可选的自定义日志配置文档
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON/YAML logging configuration (default: built-in)")

	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(logsCmd)
	RootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
