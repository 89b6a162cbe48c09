package report

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteText renders the report as plain text with grouped numbers.
func WriteText(w io.Writer, r Report, currency string) error {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Total Registrations: %d\n", r.Metrics.Count)
	p.Fprintf(w, "Total Revenue:       %d %s\n", r.Metrics.TotalRevenue, currency)
	p.Fprintf(w, "Total Attendees:     %d\n", r.Metrics.TotalAttendees)

	writeSection(p, w, "Meal Distribution", r.MealDistribution, "")
	writeSection(p, w, "Department Distribution", r.DepartmentDistribution, "")
	_, err := writeSection(p, w, "Revenue by Department", r.RevenueByDepartment, " "+currency)
	return err
}

func writeSection(p *message.Printer, w io.Writer, title string, d Distribution, unit string) (int, error) {
	n, err := p.Fprintf(w, "\n%s\n", title)
	if err != nil {
		return n, err
	}
	if len(d) == 0 {
		return p.Fprintf(w, "  (no data)\n")
	}
	for _, b := range d {
		if n, err = p.Fprintf(w, "  %-14s %d%s\n", b.Label, b.Value, unit); err != nil {
			return n, err
		}
	}
	return n, nil
}
