package solver

import "github.com/shopspring/decimal"

// Bundle is a priced group of items sold together as a single unit. Items are
// compared for equality only and may repeat within a bundle; coverage checks
// apply set semantics, so duplicates are harmless.
type Bundle struct {
	Price decimal.Decimal
	Items []string
}

// VendorMenu holds the bundles one vendor offers, in catalog order.
type VendorMenu struct {
	Vendor  string
	Bundles []Bundle
}

// Result identifies the cheapest vendor found for a request and the minimum
// total price that vendor can achieve.
type Result struct {
	Vendor string
	Price  decimal.Decimal
}

// Solver describes the behaviour required from a bundle-cover solver.
type Solver interface {
	CheapestVendor(menus []VendorMenu, items []string) (Result, error)
}
