package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/combo-solver/internal/solver"
)

func testCatalog() []solver.VendorMenu {
	return []solver.VendorMenu{
		{Vendor: "A", Bundles: []solver.Bundle{
			{Price: decimal.RequireFromString("5"), Items: []string{"coffee"}},
			{Price: decimal.RequireFromString("3"), Items: []string{"apples"}},
		}},
		{Vendor: "B", Bundles: []solver.Bundle{
			{Price: decimal.RequireFromString("7"), Items: []string{"coffee", "apples"}},
		}},
	}
}

func TestNewMemoryStorageStartsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	got, err := store.GetCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty catalog, got %d menus", len(got))
	}
}

func TestSetCatalogUpdatesState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	if err := store.SetCatalog(testCatalog()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Vendor != "A" || got[1].Vendor != "B" {
		t.Fatalf("unexpected catalog: %+v", got)
	}
}

func TestGetCatalogReturnsDefensiveCopy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	if err := store.SetCatalog(testCatalog()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got[0].Vendor = "mutated"
	got[0].Bundles[0].Items[0] = "mutated"

	again, err := store.GetCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again[0].Vendor != "A" || again[0].Bundles[0].Items[0] != "coffee" {
		t.Fatalf("expected stored catalog to be unaffected by caller mutation, got %+v", again[0])
	}
}

func TestSetCatalogRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tooMany := make([]solver.Bundle, maxVendorBundles+1)
	for i := range tooMany {
		tooMany[i] = solver.Bundle{Price: decimal.RequireFromString("1"), Items: []string{"coffee"}}
	}

	tests := []struct {
		name  string
		menus []solver.VendorMenu
	}{
		{name: "Nil", menus: nil},
		{name: "Empty", menus: []solver.VendorMenu{}},
		{name: "BlankVendor", menus: []solver.VendorMenu{
			{Vendor: "  ", Bundles: []solver.Bundle{{Price: decimal.RequireFromString("1"), Items: []string{"coffee"}}}},
		}},
		{name: "NoBundles", menus: []solver.VendorMenu{{Vendor: "A"}}},
		{name: "TooManyBundles", menus: []solver.VendorMenu{{Vendor: "A", Bundles: tooMany}}},
		{name: "NegativePrice", menus: []solver.VendorMenu{
			{Vendor: "A", Bundles: []solver.Bundle{{Price: decimal.RequireFromString("-1"), Items: []string{"coffee"}}}},
		}},
		{name: "BundleWithoutItems", menus: []solver.VendorMenu{
			{Vendor: "A", Bundles: []solver.Bundle{{Price: decimal.RequireFromString("1")}}},
		}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStorage()
			if err := store.SetCatalog(tc.menus); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	store := NewMemoryStorage()
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(n int) {
			defer wg.Done()
			menus := []solver.VendorMenu{
				{Vendor: fmt.Sprintf("vendor-%d", n), Bundles: []solver.Bundle{
					{Price: decimal.RequireFromString(strconv.Itoa(n + 1)), Items: []string{"coffee"}},
				}},
			}
			if err := store.SetCatalog(menus); err != nil {
				t.Errorf("SetCatalog failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			if _, err := store.GetCatalog(); err != nil {
				t.Errorf("GetCatalog failed: %v", err)
			}
		}()
	}

	wg.Wait()

	if _, err := store.GetCatalog(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
