package storage

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

// SeedProduct keeps amounts as strings so "0.1" is read exactly.
type SeedProduct struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Stock string `yaml:"stock"`
}

type Seed struct {
	Products []SeedProduct `yaml:"products"`
}

// DefaultSeed is the catalog the shop starts with when no file is given.
func DefaultSeed() *Seed {
	return &Seed{Products: []SeedProduct{
		{Name: "Laptop", Price: "45000", Stock: "140"},
		{Name: "Cycle", Price: "12000", Stock: "400"},
		{Name: "Dress", Price: "800", Stock: "40"},
		{Name: "Shirts", Price: "567", Stock: "890"},
		{Name: "Books", Price: "7290", Stock: "190"},
	}}
}

// LoadSeed reads a YAML catalog seed from path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed YAML: %w", err)
	}
	return &s, nil
}

// Populate adds every seed product to cat and returns how many were added.
// It stops at the first bad entry.
func (s *Seed) Populate(cat *Catalog) (int, error) {
	for i, sp := range s.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return i, fmt.Errorf("product %d (%s): bad price %q: %w", i+1, sp.Name, sp.Price, err)
		}
		stock, err := decimal.NewFromString(sp.Stock)
		if err != nil {
			return i, fmt.Errorf("product %d (%s): bad stock %q: %w", i+1, sp.Name, sp.Stock, err)
		}
		if _, err := cat.Add(domain.Product{Name: sp.Name, UnitPrice: price, Stock: stock}); err != nil {
			return i, fmt.Errorf("product %d: %w", i+1, err)
		}
	}
	return len(s.Products), nil
}
