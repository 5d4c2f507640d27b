package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/tool/ui"
)

// renderWidth is the header box width used by --pretty.
const renderWidth = 80

var (
	readEncoding  string
	lsAll         bool
	searchRecurse bool
	searchExclude []string
)

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Read a file through the policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "Read", ui.IconRead, func(ctx context.Context, exec *fsops.Executor) fsops.Result {
			return exec.Read(ctx, fsops.ReadParams{Path: args[0], Encoding: readEncoding})
		})
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List a directory through the policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "List", ui.IconList, func(ctx context.Context, exec *fsops.Executor) fsops.Result {
			return exec.List(ctx, fsops.ListParams{Path: args[0], IncludeHidden: lsAll})
		})
	},
}

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show file or directory metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "Info", ui.IconInfo, func(ctx context.Context, exec *fsops.Executor) fsops.Result {
			return exec.Stat(ctx, fsops.StatParams{Path: args[0]})
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <dir> <pattern>",
	Short: "Find files whose name matches a wildcard pattern",
	Long: `Find files whose name matches a wildcard pattern ("*" and "?").

Examples:
  fsgate search . "*.go" -r
  fsgate search docs "*.md" -r --exclude "archive/**"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "Search", ui.IconSearch, func(ctx context.Context, exec *fsops.Executor) fsops.Result {
			return exec.Search(ctx, fsops.SearchParams{
				Path:      args[0],
				Pattern:   args[1],
				Recursive: searchRecurse,
				Exclude:   searchExclude,
			})
		})
	},
}

func init() {
	readCmd.Flags().StringVarP(&readEncoding, "encoding", "e", "", "Text encoding (utf8, latin1, utf16le, base64, hex, ...)")
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Include hidden entries")
	searchCmd.Flags().BoolVarP(&searchRecurse, "recursive", "r", false, "Descend into subdirectories")
	searchCmd.Flags().StringSliceVar(&searchExclude, "exclude", nil, "Glob patterns to skip (repeatable)")

	rootCmd.AddCommand(readCmd, lsCmd, statCmd, searchCmd)
}

// errOperationFailed makes the process exit non-zero after the failure
// envelope has already been printed.
var errOperationFailed = errors.New("operation failed")

// runOp loads the policy, runs one operation and prints its envelope.
func runOp(cmd *cobra.Command, title, icon string, op func(context.Context, *fsops.Executor) fsops.Result) error {
	settings, p, err := loadPolicy(newLoader())
	if err != nil {
		return err
	}
	exec := newExecutor(settings, p, nil)

	start := time.Now()
	res := op(cmd.Context(), exec)
	if err := printResult(cmd.OutOrStdout(), title, icon, res, time.Since(start)); err != nil {
		return err
	}
	if !res.Success {
		return errOperationFailed
	}
	return nil
}

func printResult(w io.Writer, title, icon string, res fsops.Result, d time.Duration) error {
	if prettyFlag {
		_, err := fmt.Fprint(w, ui.RenderResult(title, icon, res, d, renderWidth))
		return err
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
