package writer

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
)

// Colors used to ease the reading of live scan output, grounded on
// owasp-amass-amass's format/print.go palette.
var (
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed).SprintFunc()
	white  = color.New(color.FgHiWhite).SprintFunc()
)

// PrintStatus writes one colored "<name>....<STATUS>" line to w. The CLI
// calls it for every source in the end-of-run summary, whether or not
// --print is set; --print streams items through PrintItem.
func PrintStatus(w io.Writer, status source.Status) {
	line := fmt.Sprintf("%-25s%25s", status.Source, status.Kind.String())
	switch status.Kind {
	case source.Finished, source.Started:
		fmt.Fprintln(w, white(line))
	case source.Skipped:
		fmt.Fprintln(w, yellow(line))
	case source.Failed, source.FailedWithResult:
		fmt.Fprintln(w, red(line))
	default:
		fmt.Fprintln(w, line)
	}
}

// PrintItem writes one colored discovered subdomain line to w.
func PrintItem(w io.Writer, item result.Item) {
	fmt.Fprintln(w, green(item.Subdomain), item.IP)
}
