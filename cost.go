package fundperf

// CostSource provides the TAC, the total annual cost of a fund in percent.
//
// The workbook carries no cost, so reports show it as missing until a source
// is configured with WithCosts.
type CostSource interface {
	Cost(fund string) (float64, bool)
}

// Costs is a fixed CostSource.
type Costs map[string]float64

func (c Costs) Cost(fund string) (float64, bool) {
	v, ok := c[fund]
	return v, ok
}

// noCosts knows no cost.
type noCosts struct{}

func (noCosts) Cost(string) (float64, bool) { return 0, false }
