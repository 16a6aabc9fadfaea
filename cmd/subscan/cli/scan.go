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

	"github.com/spf13/cobra"

	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/writer"
)

func newScanCmd(root *RootCmd) *cobra.Command {
	var apex string
	var mf *moduleFilterFlags
	flags := &commonFlags{}

	cmd := &cobra.Command{
		Use:                   "scan -d <apex>",
		Short:                 "Run every registered module against an apex domain",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			agg := s.Scan(cmd.Context(), apex)
			return emitResult(cmd.OutOrStdout(), apex, flags.output, agg)
		},
	}

	cmd.Flags().StringVarP(&apex, "domain", "d", "", "apex domain to enumerate (required)")
	mf = addCommonFlags(cmd, flags, true)

	return cmd
}
