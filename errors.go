package fundperf

import "errors"

// Load failures. Load wraps them with the offending file and sheet.
var (
	ErrNoWorkbook         = errors.New("no workbook found")
	ErrMalformedSheet     = errors.New("malformed sheet")
	ErrColumnMismatch     = errors.New("price columns do not match the fund list")
	ErrMisalignedMetadata = errors.New("fund names and series labels differ in length")
)

// Request states returned by the Reporter.
var (
	// ErrNoData is returned by every computation when the store failed to load.
	ErrNoData = errors.New("no data available")
	// ErrEmptySelection is returned when no fund has been selected.
	ErrEmptySelection = errors.New("select at least one fund")
	// ErrUnknownCurrency is returned for a currency without a price table.
	ErrUnknownCurrency = errors.New("unknown currency")
)
