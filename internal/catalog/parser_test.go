package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRecords(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"A, 5.00, coffee",
		"A, 3, apples, bananas",
		"",
		"B, 7.50, coffee, apples",
	}, "\n")

	records, err := ParseRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Vendor != "A" || records[0].Price != "5.00" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if got := records[1].Items; len(got) != 2 || got[0] != "apples" || got[1] != "bananas" {
		t.Fatalf("unexpected items on second record: %v", got)
	}
	if records[2].Vendor != "B" {
		t.Fatalf("unexpected third record: %+v", records[2])
	}
}

func TestParseRecordsRejectsMalformedRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "TooFewFields", input: "A, 5.00"},
		{name: "EmptyVendor", input: " , 5.00, coffee"},
		{name: "UnparseablePrice", input: "A, cheap, coffee"},
		{name: "NegativePrice", input: "A, -2, coffee"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseRecords(strings.NewReader(tc.input)); err == nil {
				t.Fatalf("expected error for input %q", tc.input)
			}
		})
	}
}

func TestGroupByVendorContiguousRuns(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Vendor: "A", Price: "5", Items: []string{"coffee"}},
		{Vendor: "A", Price: "3", Items: []string{"apples"}},
		{Vendor: "B", Price: "7", Items: []string{"coffee", "apples"}},
	}

	menus, err := GroupByVendor(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(menus) != 2 {
		t.Fatalf("expected 2 vendor menus, got %d", len(menus))
	}
	if menus[0].Vendor != "A" || len(menus[0].Bundles) != 2 {
		t.Fatalf("unexpected first menu: %+v", menus[0])
	}
	if menus[1].Vendor != "B" || len(menus[1].Bundles) != 1 {
		t.Fatalf("unexpected second menu: %+v", menus[1])
	}
	if want := decimal.RequireFromString("7"); !menus[1].Bundles[0].Price.Equal(want) {
		t.Fatalf("expected price %s, got %s", want, menus[1].Bundles[0].Price)
	}
}

// A vendor name that reappears after another vendor's rows forms a separate
// group; the grouping never re-sorts the input.
func TestGroupByVendorKeepsSplitRunsDistinct(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Vendor: "A", Price: "5", Items: []string{"coffee"}},
		{Vendor: "B", Price: "7", Items: []string{"coffee", "apples"}},
		{Vendor: "A", Price: "3", Items: []string{"apples"}},
	}

	menus, err := GroupByVendor(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(menus) != 3 {
		t.Fatalf("expected 3 groups for a split vendor run, got %d", len(menus))
	}
	if menus[0].Vendor != "A" || menus[1].Vendor != "B" || menus[2].Vendor != "A" {
		t.Fatalf("unexpected group order: %v, %v, %v", menus[0].Vendor, menus[1].Vendor, menus[2].Vendor)
	}
}

func TestGroupByVendorRejectsBadPrices(t *testing.T) {
	t.Parallel()

	if _, err := GroupByVendor([]Record{{Vendor: "A", Price: "???", Items: []string{"coffee"}}}); err == nil {
		t.Fatalf("expected error for unparseable price")
	}
	if _, err := GroupByVendor([]Record{{Vendor: "A", Price: "-1", Items: []string{"coffee"}}}); err == nil {
		t.Fatalf("expected error for negative price")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.txt")
	contents := "A, 5, coffee\nA, 3, apples\nB, 7, coffee, apples\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}

	menus, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(menus) != 2 {
		t.Fatalf("expected 2 vendor menus, got %d", len(menus))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
