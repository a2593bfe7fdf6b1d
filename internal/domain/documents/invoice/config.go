package invoice

import "ledgerhouse/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for invoices.
	// Invoices are primary accounting documents, gaps are not acceptable.
	NumeratorStrategy = numerator.StrategyStrict

	// NumberPrefix yields numbers like INV-2026-00001.
	NumberPrefix = "INV"
)
