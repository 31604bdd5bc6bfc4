package fundperf

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fundperf/date"
	"github.com/xuri/excelize/v2"
)

// Layout of the workbook.
const (
	MetadataSheet = "nombres"
	namesRow      = 0 // row of the fund names in the metadata sheet
	seriesRow     = 2 // row of the series labels in the metadata sheet
	bannerRows    = 7 // rows above the header row of a price sheet
)

// dateLayouts are the text date formats accepted in the first column of a price sheet.
//
// Slashed dates are read month first: 02/01/2024 is February 1st.
var dateLayouts = []string{
	"2006-1-2",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1-2-2006",
}

// ReadWorkbook loads the store from the workbook file at path.
func ReadWorkbook(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook %q: %w", path, err)
	}
	defer f.Close()

	s, err := decodeWorkbook(f, path)
	if err != nil {
		return nil, fmt.Errorf("could not load workbook %q: %w", path, err)
	}
	return s, nil
}

// DecodeWorkbook loads the store from a workbook stream.
func DecodeWorkbook(r io.Reader) (*Store, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook: %w", err)
	}
	defer f.Close()
	return decodeWorkbook(f, "")
}

func decodeWorkbook(f *excelize.File, source string) (*Store, error) {
	funds, err := decodeMetadata(f)
	if err != nil {
		return nil, err
	}

	use1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		use1904 = *props.Date1904
	}

	s := newStore(source, funds)
	for _, cur := range Currencies {
		t, err := decodePrices(f, cur, funds, use1904)
		if err != nil {
			// No partial store: one bad sheet fails the whole load.
			return nil, err
		}
		s.tables[cur] = t
	}
	return s, nil
}

// decodeMetadata reads the fund names and the series labels, by column position.
func decodeMetadata(f *excelize.File) ([]Fund, error) {
	rows, err := f.GetRows(MetadataSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformedSheet, MetadataSheet, err)
	}
	if len(rows) <= seriesRow {
		return nil, fmt.Errorf("%w %q: %d rows, want at least %d", ErrMalformedSheet, MetadataSheet, len(rows), seriesRow+1)
	}
	names := nonBlank(rows[namesRow])
	if len(names) == 0 {
		return nil, fmt.Errorf("%w %q: no fund name", ErrMalformedSheet, MetadataSheet)
	}
	return zipFunds(names, nonBlank(rows[seriesRow]))
}

// decodePrices reads the price sheet of cur.
//
// The first column holds the dates, the next ones the prices of funds in the
// same order as the metadata.
func decodePrices(f *excelize.File, cur Currency, funds []Fund, use1904 bool) (*Table, error) {
	sheet := cur.Sheet()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformedSheet, sheet, err)
	}
	if len(rows) <= bannerRows {
		return nil, fmt.Errorf("%w %q: no header row", ErrMalformedSheet, sheet)
	}
	data := rows[bannerRows+1:]

	width := len(rows[bannerRows])
	for _, row := range data {
		width = max(width, len(row))
	}
	if width != len(funds)+1 {
		return nil, fmt.Errorf("%w in %q: %d columns, want %d (date + %d funds)", ErrColumnMismatch, sheet, width, len(funds)+1, len(funds))
	}

	t := newTable(cur)
	for _, fund := range funds {
		t.series[fund.Name] = new(date.History[float64])
	}
	for i, row := range data {
		if len(nonBlank(row)) == 0 {
			continue
		}
		day, err := parseDay(row[0], use1904)
		if err != nil {
			// Excel rows are 1-based.
			return nil, fmt.Errorf("%w %q row %d: %w", ErrMalformedSheet, sheet, bannerRows+2+i, err)
		}
		t.dates = append(t.dates, day)
		for j, fund := range funds {
			if j+1 >= len(row) {
				break
			}
			if price, ok := parsePrice(row[j+1]); ok {
				t.series[fund.Name].Append(day, price)
			}
		}
	}
	slices.SortFunc(t.dates, date.Date.Compare)
	t.dates = slices.Compact(t.dates)
	return t, nil
}

// parseDay reads a date cell: an Excel serial number or a text date.
func parseDay(cell string, use1904 bool) (date.Date, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return date.Date{}, fmt.Errorf("missing date")
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, use1904)
		if err != nil {
			return date.Date{}, fmt.Errorf("invalid date serial %q: %w", cell, err)
		}
		return date.FromTime(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return date.FromTime(t), nil
		}
	}
	return date.Date{}, fmt.Errorf("invalid date %q", cell)
}

// parsePrice reads a price cell. Blank, non numeric (like #N/A) and non
// positive cells are missing observations.
func parsePrice(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// nonBlank returns the trimmed non empty cells, in order.
func nonBlank(cells []string) []string {
	var out []string
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
