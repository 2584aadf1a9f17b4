package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

//go:embed catalog.json
var catalogJSON []byte

//go:embed catalog_schema.json
var schemaJSON []byte

// Catalog is the read-only reference data for request creation: categories of
// repairable devices, each with its offered services. It is not persisted by
// the core; the embedded document is validated against its schema at load.
type Catalog struct {
	categories []Category
	byService  map[string]*Service
}

type Category struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Services []Service `json:"services"`
}

type Service struct {
	ID             int    `json:"id"`
	CategoryID     int    `json:"category_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	EstimatedPrice string `json:"estimated_price"`
	EstimatedTime  string `json:"estimated_time"`
	Category       string `json:"-"`
}

// Load validates and decodes the embedded catalog document.
func Load(ctx context.Context) (*Catalog, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, rs); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	keyErrs, err := rs.ValidateBytes(ctx, catalogJSON)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Errorf("catalog document invalid: %v", keyErrs[0])
	}

	var doc struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(catalogJSON, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		categories: doc.Categories,
		byService:  make(map[string]*Service),
	}
	for i := range c.categories {
		cat := &c.categories[i]
		for j := range cat.Services {
			svc := &cat.Services[j]
			svc.Category = cat.Name
			// later duplicates do not shadow earlier services
			if _, exists := c.byService[svc.Name]; !exists {
				c.byService[svc.Name] = svc
			}
		}
	}

	return c, nil
}

// Categories returns all catalog categories in document order.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Find returns the service with the given name, if any.
func (c *Catalog) Find(serviceName string) (*Service, bool) {
	s, ok := c.byService[serviceName]
	return s, ok
}

// CategoryFor resolves the category name for a service name; empty when the
// service is not in the catalog.
func (c *Catalog) CategoryFor(serviceName string) string {
	if s, ok := c.byService[serviceName]; ok {
		return s.Category
	}
	return ""
}
