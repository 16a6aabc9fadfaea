// Copyright (c) 2024 Tim <tbckr>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/axrune/subscan/internal/logging"
)

// RootCmd holds the resolved root-level state every subcommand reads:
// the shared logger and the --config/--verbose flag values.
type RootCmd struct {
	Cmd *cobra.Command

	configFile string
	verbose    bool

	logger *slog.Logger
	level  *slog.LevelVar
}

const (
	rootCmdShortDescription = "subscan is a concurrent subdomain enumeration engine"
	rootCmdLongDescription  = `subscan queries many independent third-party sources in parallel -
search engines, certificate-transparency indices, passive-DNS APIs,
HTML-scraped sites, web crawls, code search, and zone transfers - extracts
candidate hostnames, optionally resolves each to an IP, and emits a
merged, de-duplicated result set with per-source statistics.`
)

// Run parses args against the root command tree and executes it.
func Run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) (error, int) {
	root := NewRootCmd(ctx, stdin, stdout, stderr)
	if err := root.Execute(args); err != nil {
		return err, 1
	}
	return nil, 0
}

// NewRootCmd builds the cobra command tree.
func NewRootCmd(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) *RootCmd {
	root := &RootCmd{level: logging.NewLevelVar()}

	cmd := &cobra.Command{
		Use:                   "subscan",
		Short:                 rootCmdShortDescription,
		Long:                  rootCmdLongDescription,
		SilenceErrors:         true,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if root.verbose {
				root.level.Set(slog.LevelDebug)
			}
			root.logger = logging.New(cmd.ErrOrStderr(), root.level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.SetContext(ctx)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&root.configFile, "config", "", "path to the subscan config file (default: XDG config dir)")
	cmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newScanCmd(root),
		newBruteCmd(root),
		newModuleCmd(root),
		newVersionCmd(root),
	)

	root.Cmd = cmd
	return root
}

// Execute runs the command tree against args.
func (r *RootCmd) Execute(args []string) error {
	r.Cmd.SetArgs(args)
	return r.Cmd.Execute()
}
