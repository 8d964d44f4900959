package catalog

import (
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"github.com/eugenenazirov/combo-solver/internal/solver"
)

const maxVendorBundles = 20

// ErrInvalidCatalog indicates the provided catalog violates validation rules.
var ErrInvalidCatalog = errors.New("catalog must contain named vendors with 1 to 20 non-negatively priced bundles of at least one item each")

// Storage provides access to the catalog used by the solver.
type Storage interface {
	GetCatalog() ([]solver.VendorMenu, error)
	SetCatalog(menus []solver.VendorMenu) error
}

// MemoryStorage keeps the catalog in-memory and guards access with a RWMutex.
// It starts empty; solving against an empty catalog yields no vendor.
type MemoryStorage struct {
	mu    sync.RWMutex
	menus []solver.VendorMenu
}

// NewMemoryStorage initialises empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// GetCatalog returns a defensive copy of the currently stored catalog.
func (s *MemoryStorage) GetCatalog() ([]solver.VendorMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneCatalog(s.menus), nil
}

// SetCatalog validates and stores the provided catalog.
func (s *MemoryStorage) SetCatalog(menus []solver.VendorMenu) error {
	if err := ValidateCatalog(menus); err != nil {
		return err
	}

	cloned := cloneCatalog(menus)
	s.mu.Lock()
	s.menus = cloned
	s.mu.Unlock()

	return nil
}

// ValidateCatalog checks that every vendor is named and offers between 1 and
// 20 bundles, each non-negatively priced and containing at least one item.
// The bundle cap bounds the solver's exponential search at the service edge;
// an empty catalog is rejected because there is nothing to solve against.
func ValidateCatalog(menus []solver.VendorMenu) error {
	if len(menus) == 0 {
		return ErrInvalidCatalog
	}
	for _, menu := range menus {
		if strings.TrimSpace(menu.Vendor) == "" {
			return ErrInvalidCatalog
		}
		if len(menu.Bundles) == 0 || len(menu.Bundles) > maxVendorBundles {
			return ErrInvalidCatalog
		}
		for _, bundle := range menu.Bundles {
			if bundle.Price.IsNegative() {
				return ErrInvalidCatalog
			}
			if len(bundle.Items) == 0 {
				return ErrInvalidCatalog
			}
		}
	}
	return nil
}

func cloneCatalog(menus []solver.VendorMenu) []solver.VendorMenu {
	if len(menus) == 0 {
		return []solver.VendorMenu{}
	}

	out := make([]solver.VendorMenu, len(menus))
	for i, menu := range menus {
		bundles := make([]solver.Bundle, len(menu.Bundles))
		for j, bundle := range menu.Bundles {
			bundles[j] = solver.Bundle{
				Price: bundle.Price,
				Items: append([]string(nil), bundle.Items...),
			}
		}
		out[i] = solver.VendorMenu{Vendor: menu.Vendor, Bundles: bundles}
	}
	return out
}
