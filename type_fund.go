package fundperf

import "fmt"

// Fund identifies a fund of the workbook and the share class of its prices.
type Fund struct {
	Name   string `json:"fund"`
	Series string `json:"series"`
}

func (f Fund) String() string { return fmt.Sprintf("%s (%s)", f.Name, f.Series) }

// zipFunds pairs fund names with series labels by position.
func zipFunds(names, series []string) ([]Fund, error) {
	if len(names) != len(series) {
		return nil, fmt.Errorf("%w: %d names, %d series labels", ErrMisalignedMetadata, len(names), len(series))
	}
	funds := make([]Fund, len(names))
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate fund name %q", ErrMalformedSheet, name)
		}
		seen[name] = true
		funds[i] = Fund{Name: name, Series: series[i]}
	}
	return funds, nil
}
