package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"stylesai-service/models"
)

// ErrNotFound is returned when a product id does not exist in the catalog.
var ErrNotFound = errors.New("product not found")

// Reader loads products from a flat JSON file. Every call re-reads the
// file, so catalog edits take effect immediately (read-through, no cache).
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

type productFile struct {
	Products []models.Product `json:"products"`
}

// ListAll returns every product in file order.
func (r *Reader) ListAll() ([]models.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product catalog: %w", err)
	}

	var file productFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse product catalog: %w", err)
	}
	return file.Products, nil
}

// GetByID returns the product with the given id, or ErrNotFound.
func (r *Reader) GetByID(id int) (*models.Product, error) {
	products, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}
