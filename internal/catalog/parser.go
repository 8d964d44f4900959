// Package catalog reads vendor catalogs and keeps the active one in memory.
// A catalog is a flat sequence of comma-separated rows, each carrying a
// vendor, a bundle price, and the items that bundle contains; rows belonging
// to one vendor are contiguous.
package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/combo-solver/internal/solver"
)

// Record is one unparsed catalog row.
type Record struct {
	Vendor string
	Price  string
	Items  []string
}

// ParseRecords reads catalog rows from r. Each row needs a vendor, a price,
// and at least one item; surrounding whitespace is trimmed and blank lines are
// skipped. Prices are validated here so that grouping cannot fail on a row
// that parsing accepted.
func ParseRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []Record
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read catalog row %d", row)
		}

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 3 {
			return nil, errors.Errorf("catalog row %d: expected vendor, price, and at least one item, got %d fields", row, len(fields))
		}
		if fields[0] == "" {
			return nil, errors.Errorf("catalog row %d: vendor must not be empty", row)
		}
		if err := validatePrice(fields[1]); err != nil {
			return nil, errors.Wrapf(err, "catalog row %d", row)
		}

		records = append(records, Record{
			Vendor: fields[0],
			Price:  fields[1],
			Items:  fields[2:],
		})
	}

	return records, nil
}

// GroupByVendor folds records into per-vendor menus. Records are assumed
// pre-grouped: each contiguous run of one vendor name becomes a menu, and a
// vendor name that reappears after an interleaving run forms a separate menu.
// That is an inherited catalog contract, not a defect to repair here.
func GroupByVendor(records []Record) ([]solver.VendorMenu, error) {
	var menus []solver.VendorMenu
	for _, record := range records {
		price, err := decimal.NewFromString(record.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "vendor %s: parse price %q", record.Vendor, record.Price)
		}
		if price.IsNegative() {
			return nil, errors.Errorf("vendor %s: price %s must not be negative", record.Vendor, price)
		}

		bundle := solver.Bundle{Price: price, Items: append([]string(nil), record.Items...)}
		if n := len(menus); n > 0 && menus[n-1].Vendor == record.Vendor {
			menus[n-1].Bundles = append(menus[n-1].Bundles, bundle)
			continue
		}
		menus = append(menus, solver.VendorMenu{
			Vendor:  record.Vendor,
			Bundles: []solver.Bundle{bundle},
		})
	}
	return menus, nil
}

// LoadFile reads and groups the catalog file at path.
func LoadFile(path string) ([]solver.VendorMenu, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog file")
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := ParseRecords(f)
	if err != nil {
		return nil, err
	}
	return GroupByVendor(records)
}

func validatePrice(raw string) error {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return errors.Wrapf(err, "parse price %q", raw)
	}
	if price.IsNegative() {
		return errors.Errorf("price %s must not be negative", price)
	}
	return nil
}
