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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/axrune/subscan/internal/apperr"
	"github.com/axrune/subscan/internal/registry"
	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/writer"
)

func newModuleCmd(root *RootCmd) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "module",
		Short:                 "Inspect or run a single registered module",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newModuleListCmd(root),
		newModuleGetCmd(root),
		newModuleRunCmd(root),
	)
	return cmd
}

func newModuleListCmd(root *RootCmd) *cobra.Command {
	return &cobra.Command{
		Use:                   "list",
		Short:                 "List every registered module name",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := buildSubscan(root, root.configFile, &commonFlags{}, nil)
			if err != nil {
				return err
			}
			for _, mod := range s.Modules() {
				fmt.Fprintln(cmd.OutOrStdout(), mod.Name())
			}
			return nil
		},
	}
}

func newModuleGetCmd(root *RootCmd) *cobra.Command {
	return &cobra.Command{
		Use:                   "get <name>",
		Aliases:               []string{"describe"},
		Short:                 "Print a module's static metadata without running it",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSubscan(root, root.configFile, &commonFlags{}, nil)
			if err != nil {
				return err
			}
			desc, ok := s.Describe(args[0])
			if !ok {
				return apperr.ErrModuleNotFound
			}
			printDescription(cmd.OutOrStdout(), desc)
			return nil
		},
	}
}

func printDescription(w io.Writer, desc registry.Description) {
	fmt.Fprintf(w, "name:           %s\n", desc.Name)
	fmt.Fprintf(w, "has requester:  %t\n", desc.HasRequester)
	fmt.Fprintf(w, "has extractor:  %t\n", desc.HasExtractor)
	fmt.Fprintf(w, "requires proxy: %t\n", desc.RequiresProxy)
}

func newModuleRunCmd(root *RootCmd) *cobra.Command {
	var apex string
	var mf *moduleFilterFlags
	flags := &commonFlags{}

	cmd := &cobra.Command{
		Use:                   "run <name> -d <apex>",
		Short:                 "Run a single named module against an apex domain",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if apex == "" {
				return fmt.Errorf("-d/--domain is required")
			}
			apex, err := canonicalizeApex(apex)
			if err != nil {
				return err
			}

			s, err := buildSubscan(root, root.configFile, flags, mf)
			if err != nil {
				return err
			}
			if flags.print {
				s.OnItem(func(item result.Item) { writer.PrintItem(cmd.OutOrStdout(), item) })
			}

			agg, err := s.Run(cmd.Context(), args[0], apex)
			if err != nil {
				return err
			}
			return emitResult(cmd.OutOrStdout(), apex, flags.output, agg)
		},
	}

	cmd.Flags().StringVarP(&apex, "domain", "d", "", "apex domain to enumerate (required)")
	mf = addCommonFlags(cmd, flags, true)

	return cmd
}
