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
	"os"
	"time"

	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
	"github.com/axrune/subscan/internal/writer"
)

// emitResult prints the colored per-source status summary to stdout and,
// when format is non-empty, additionally serializes agg to a
// "<apex>_<epoch>.<ext>" file in the current directory (spec.md §6).
func emitResult(stdout io.Writer, apex, format string, agg *result.Aggregate) error {
	for name, stat := range agg.Statistics {
		writer.PrintStatus(stdout, source.Status{Source: name, Kind: stat.Status, Reason: stat.Reason})
	}
	fmt.Fprintf(stdout, "%d subdomains found for %s\n", agg.Total(), apex)

	if format == "" {
		return nil
	}
	f, err := writer.ParseFormat(format)
	if err != nil {
		return err
	}
	path := writer.Filename(apex, f, time.Now())
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := writer.Write(file, f, agg); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}
