package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stylelens/backend/internal/domain"
)

//go:embed products.yaml
var embeddedProducts []byte

// productRecord is the YAML shape of one catalog entry
type productRecord struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Price    *float64 `yaml:"price"`
	Image    string   `yaml:"image"`
	Link     string   `yaml:"link"`
	Source   string   `yaml:"source"`
	Category string   `yaml:"category"`
	Rating   float64  `yaml:"rating"`
	Tags     []string `yaml:"tags"`
}

// LocalCatalog is the static product collection used as the fallback source
type LocalCatalog struct {
	products []domain.Product
}

// NewLocalCatalog loads the catalog compiled into the binary
func NewLocalCatalog() (*LocalCatalog, error) {
	return ParseLocalCatalog(embeddedProducts)
}

// LoadLocalCatalog loads a catalog from a YAML file on disk
func LoadLocalCatalog(path string) (*LocalCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local catalog %s: %w", path, err)
	}
	return ParseLocalCatalog(data)
}

// ParseLocalCatalog decodes a YAML product list. Every record needs an id and a
// title, and ids must be unique.
func ParseLocalCatalog(data []byte) (*LocalCatalog, error) {
	var records []productRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCatalog, err)
	}

	seen := make(map[string]bool, len(records))
	products := make([]domain.Product, 0, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" || strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: record %d is missing id or title", domain.ErrMalformedCatalog, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrMalformedCatalog, id)
		}
		seen[id] = true
		products = append(products, mapRecord(r))
	}

	return &LocalCatalog{products: products}, nil
}

func mapRecord(r productRecord) domain.Product {
	price := domain.Price{}
	if r.Price != nil {
		price = domain.NewPrice(*r.Price)
	}

	var tags []string
	if len(r.Tags) > 0 {
		tags = make([]string, len(r.Tags))
		copy(tags, r.Tags)
	}

	return domain.Product{
		ID:       strings.TrimSpace(r.ID),
		Title:    r.Title,
		Price:    price,
		Image:    r.Image,
		Link:     r.Link,
		Source:   r.Source,
		Category: r.Category,
		Rating:   r.Rating,
		Tags:     tags,
	}
}

// Products returns a copy of the catalog so callers cannot alter the snapshot
func (c *LocalCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// Size returns the number of products in the catalog
func (c *LocalCatalog) Size() int {
	return len(c.products)
}
