// Package export renders a project's BOQ as CSV or PDF. It consumes
// the aggregation the boq package already exposes, so everything here
// is presentational.
package export

import (
	"bufio"
	"encoding/csv"
	"io"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/boqworks/boqworks/internal/boq"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

var printer = message.NewPrinter(language.English)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) write(record []string) error {
	if err := s.csv.Write(record); err != nil {
		return err
	}
	s.pendingLines++
	if s.pendingLines >= s.flushEvery {
		s.csv.Flush()
		if err := s.csv.Error(); err != nil {
			return err
		}
		s.pendingLines = 0
	}
	return nil
}

func (s *csvStreamer) close() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	return s.buf.Flush()
}

// WriteCSV streams a project as CSV: one section per milestone in
// stage order, line totals per item, then category totals and the
// grand total.
func WriteCSV(w io.Writer, project *boq.Project) error {
	s := newCSVStreamer(w)

	if err := s.write([]string{"Project", project.Name}); err != nil {
		return err
	}
	if err := s.write([]string{"Catalog Version", project.CatalogVersion}); err != nil {
		return err
	}
	if err := s.write([]string{""}); err != nil {
		return err
	}

	header := []string{"Milestone", "Material", "Category", "Quantity", "Unit", "Avg USD", "Actual USD", "Actual ZWG", "Line Total USD", "Line Total ZWG", "Notes"}
	if err := s.write(header); err != nil {
		return err
	}

	for _, ms := range project.Milestones {
		for _, item := range ms.Items {
			usd, zwg := boq.LineTotal(item)
			qty := ""
			if item.Quantity != nil {
				qty = printer.Sprintf("%.2f", *item.Quantity)
			}
			notes := ""
			if item.Notes != nil {
				notes = *item.Notes
			}
			record := []string{
				string(ms.Stage),
				item.MaterialName,
				item.Category,
				qty,
				item.Unit,
				money(item.AveragePriceUSD),
				money(item.ActualPriceUSD),
				money(item.ActualPriceZWG),
				money(usd),
				money(zwg),
				notes,
			}
			if err := s.write(record); err != nil {
				return err
			}
		}
	}

	totals := boq.CalculateTotals(project.Milestones)
	if err := s.write([]string{""}); err != nil {
		return err
	}
	if err := s.write([]string{"Category Totals", "", "", "", "", "", "", "", "USD", "ZWG", ""}); err != nil {
		return err
	}
	for _, cat := range sortedKeys(totals.PerCategory) {
		m := totals.PerCategory[cat]
		if err := s.write([]string{cat, "", "", "", "", "", "", "", money(m.USD), money(m.ZWG), ""}); err != nil {
			return err
		}
	}
	if err := s.write([]string{"Grand Total", "", "", "", "", "", "", "", money(totals.Grand.USD), money(totals.Grand.ZWG), ""}); err != nil {
		return err
	}

	return s.close()
}

func money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func sortedKeys(m map[string]boq.Money) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
