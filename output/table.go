package output

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// Table renders rows as an aligned two-space-indented table with an
// uppercase header row.
func Table(header []string, rows [][]string) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 5, ' ', 0)

	upper := make([]string, len(header))
	for i, h := range header {
		upper[i] = strings.ToUpper(h)
	}
	_, _ = fmt.Fprintln(w, "  "+strings.Join(upper, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, "  "+strings.Join(row, "\t"))
	}
	_ = w.Flush()
	return sb.String()
}

// NameserverTable renders the intended-vs-current nameserver comparison
// shown when a domain is pending verification. Missing entries on either
// side are padded with "-" so both columns have the same length.
func NameserverTable(intended, current []string) string {
	n := len(intended)
	if len(current) > n {
		n = len(current)
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := []string{"-", "-"}
		if i < len(intended) {
			row[0] = intended[i]
		}
		if i < len(current) {
			row[1] = current[i]
		}
		rows = append(rows, row)
	}
	return Table([]string{"Intended Nameservers", "Current Nameservers"}, rows)
}

// Age formats the time elapsed since t in the largest sensible unit,
// matching the compact style used in listing tables.
func Age(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
