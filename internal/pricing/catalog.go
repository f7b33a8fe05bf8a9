package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var ErrUnknownPackage = errors.New("unknown package")

// Package is a priced bundle of problem-solving units.
type Package struct {
	Quantity        int     `yaml:"quantity" json:"quantity"`
	UnitListPrice   float64 `yaml:"unit_list_price" json:"unitListPrice"`
	DiscountPercent float64 `yaml:"discount_percent" json:"discountPercent"`
	Label           string  `yaml:"label" json:"label"`
}

// EffectivePrice applies the discount to the list price, rounded to cents.
func (p Package) EffectivePrice() float64 {
	price := p.UnitListPrice * (1 - p.DiscountPercent/100)
	return math.Round(price*100) / 100
}

type Catalog struct {
	packages []Package
}

type catalogFile struct {
	Packages []Package `yaml:"packages"`
}

// DefaultCatalog loads the embedded package list.
func DefaultCatalog() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from YAML. Quantities must be positive and unique.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse package catalog: %w", err)
	}
	if len(file.Packages) == 0 {
		return nil, errors.New("package catalog is empty")
	}

	seen := make(map[int]bool, len(file.Packages))
	for _, pkg := range file.Packages {
		if pkg.Quantity <= 0 {
			return nil, fmt.Errorf("package %q: quantity must be positive", pkg.Label)
		}
		if pkg.UnitListPrice < 0 || pkg.DiscountPercent < 0 || pkg.DiscountPercent > 100 {
			return nil, fmt.Errorf("package %q: invalid price or discount", pkg.Label)
		}
		if seen[pkg.Quantity] {
			return nil, fmt.Errorf("duplicate package quantity %d", pkg.Quantity)
		}
		seen[pkg.Quantity] = true
	}
	return &Catalog{packages: file.Packages}, nil
}

// Packages returns the catalog in display order.
func (c *Catalog) Packages() []Package {
	out := make([]Package, len(c.packages))
	copy(out, c.packages)
	return out
}

// Default is the package preselected for a new submission.
func (c *Catalog) Default() Package {
	return c.packages[0]
}

// Lookup finds a package by quantity; zero selects the default.
func (c *Catalog) Lookup(quantity int) (Package, error) {
	if quantity == 0 {
		return c.Default(), nil
	}
	for _, pkg := range c.packages {
		if pkg.Quantity == quantity {
			return pkg, nil
		}
	}
	return Package{}, fmt.Errorf("%w: quantity %d", ErrUnknownPackage, quantity)
}
