package solver

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type bruteForceSolver struct{}

// New creates a Solver based on exhaustive enumeration of bundle selections.
// Menus are expected to be small; the per-vendor search is exponential in the
// number of bundles that survive reduction.
func New() Solver {
	return &bruteForceSolver{}
}

func (s *bruteForceSolver) CheapestVendor(menus []VendorMenu, items []string) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrNoItemsRequested
	}

	var best Result
	found := false

	for _, menu := range menus {
		reduced, err := ReduceMenu(menu.Bundles, items)
		if err != nil {
			if errors.Is(err, ErrNoCoveringSelection) {
				continue
			}
			return Result{}, err
		}

		price, err := SolveVendor(reduced, items)
		if err != nil {
			if errors.Is(err, ErrNoCoveringSelection) {
				continue
			}
			return Result{}, err
		}

		// Strict inequality: the first vendor encountered wins ties.
		if !found || price.Cmp(best.Price) < 0 {
			best = Result{Vendor: menu.Vendor, Price: price}
			found = true
		}
	}

	if !found {
		return Result{}, ErrNoVendor
	}
	return best, nil
}

// ReduceMenu discards bundles that share no items with the request. A bundle
// disjoint from the request can never appear in an optimal covering: it adds
// cost without aiding coverage. Returns ErrNoCoveringSelection when some
// requested item appears in no bundle of the menu, which makes the vendor
// infeasible outright.
func ReduceMenu(menu []Bundle, items []string) ([]Bundle, error) {
	wanted := itemSet(items)
	reduced := make([]Bundle, 0, len(menu))
	covered := make(map[string]struct{}, len(wanted))

	for _, bundle := range menu {
		keep := false
		for _, item := range bundle.Items {
			if _, ok := wanted[item]; ok {
				keep = true
				covered[item] = struct{}{}
			}
		}
		if keep {
			reduced = append(reduced, bundle)
		}
	}

	if len(covered) != len(wanted) {
		return nil, ErrNoCoveringSelection
	}
	return reduced, nil
}

// SolveVendor returns the minimum total price of a bundle selection covering
// every requested item, over a menu that has already passed ReduceMenu.
func SolveVendor(menu []Bundle, items []string) (decimal.Decimal, error) {
	switch len(menu) {
	case 0:
		return decimal.Decimal{}, ErrNoCoveringSelection
	case 1:
		// A feasible reduction that retains a single bundle implies that
		// bundle alone covers the whole request, so validation is skipped.
		return menu[0].Price, nil
	}

	wanted := itemSet(items)
	var min decimal.Decimal
	found := false

	for _, selection := range selectionVectors(len(menu)) {
		if !covers(menu, selection, wanted) {
			continue
		}
		price := selectionPrice(menu, selection)
		if !found || price.Cmp(min) < 0 {
			min = price
			found = true
		}
	}

	if !found {
		return decimal.Decimal{}, ErrNoCoveringSelection
	}
	return min, nil
}

// covers reports whether the selected bundles jointly contain every wanted
// item. Selection vectors are produced against the same menu they are applied
// to; a length mismatch is a caller bug, not input, and panics.
func covers(menu []Bundle, selection []bool, wanted map[string]struct{}) bool {
	if len(selection) != len(menu) {
		panic(fmt.Sprintf("solver: selection vector length %d does not match menu length %d", len(selection), len(menu)))
	}

	remaining := len(wanted)
	seen := make(map[string]struct{}, remaining)
	for i, selected := range selection {
		if !selected {
			continue
		}
		for _, item := range menu[i].Items {
			if _, ok := wanted[item]; !ok {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			remaining--
		}
		if remaining == 0 {
			return true
		}
	}
	return remaining == 0
}

// selectionPrice sums the prices of the selected bundles.
func selectionPrice(menu []Bundle, selection []bool) decimal.Decimal {
	if len(selection) != len(menu) {
		panic(fmt.Sprintf("solver: selection vector length %d does not match menu length %d", len(selection), len(menu)))
	}

	total := decimal.Zero
	for i, selected := range selection {
		if selected {
			total = total.Add(menu[i].Price)
		}
	}
	return total
}

func itemSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
