package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/tsutils/tsutils/internal/logrouter"
)

var followLogs bool

var logsCmd = &cobra.Command{
	Use:   "logs [verbose|concise|error]",
	Short: "Print or follow one of the routed log files",
	// Short: 打印或跟踪其中一个路由日志文件
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler := "concise"
		if len(args) == 1 {
			handler = args[0]
		}
		lc := logrouter.FromContext(cmd.Context())
		if lc == nil {
			return fmt.Errorf("logging context not initialized")
		}
		path, ok := lc.HandlerFile(handler)
		if !ok {
			return fmt.Errorf("no rotating-file handler named %q", handler)
		}

		if !followLogs {
			data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from the loaded config
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(data)
			return nil
		}

		// ReOpen keeps following across rotations; Poll covers hosts
		// where inotify is unavailable.
		// ReOpen 保证在轮转后继续跟踪；Poll 兼容没有 inotify 的主机。
		t, err := tail.TailFile(path, tail.Config{
			Follow:    true,
			ReOpen:    true,
			MustExist: false,
			Poll:      true,
			Logger:    tail.DiscardingLogger,
		})
		if err != nil {
			return err
		}
		defer t.Stop()

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case line, ok := <-t.Lines:
				if !ok {
					return nil
				}
				if line.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "read error: %v\n", line.Err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), line.Text)
			}
		}
	},
}

func init() {
	logsCmd.Flags().BoolVarP(&followLogs, "follow", "f", false, "Keep the file open and stream new lines")
}
