package migration

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// Report writes a human-readable summary of the result.
func (r *Result) Report(w io.Writer, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s: %s records, %s retained, %s rows\n",
		r.Source, humanize.Comma(int64(r.Total)), humanize.Comma(int64(r.Retained)), humanize.Comma(int64(len(r.Entries))))

	for _, e := range r.Entries {
		when := "recurring"
		if !e.Recurring && e.Due != nil {
			when = humanize.RelTime(*e.Due, now, "ago", "from now")
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Row.Content, e.Row.Date, when)
	}

	for _, s := range r.Skipped {
		fmt.Fprintf(tw, "  skipped %s\t%s\n", s.Content, s.Reason)
	}

	return tw.Flush()
}
