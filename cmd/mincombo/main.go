// Command mincombo is the batch mode of the solver: it reads a catalog file,
// finds the vendor able to supply every requested item at the lowest total
// price, and prints a single result line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/combo-solver/internal/catalog"
	"github.com/eugenenazirov/combo-solver/internal/solver"
)

const noVendorLine = "no vendor can supply all requested items"

func main() {
	app := kingpin.New("mincombo", "Finds the vendor able to supply a set of items at the lowest total price")
	catalogFile := app.Arg("catalog", "Path to the comma-separated catalog file").Required().String()
	items := app.Arg("items", "Item identifiers to cover, at least one").Required().Strings()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(*catalogFile, *items, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(catalogPath string, items []string, out io.Writer) error {
	menus, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	result, err := solver.New().CheapestVendor(menus, items)
	switch {
	case errors.Is(err, solver.ErrNoVendor):
		fmt.Fprintln(out, noVendorLine)
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "%s, %s\n", result.Vendor, result.Price)
	return nil
}
