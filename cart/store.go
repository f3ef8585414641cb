package cart

import (
	"errors"
	"math"
	"sort"
	"sync"

	"stylesai-service/catalog"
	"stylesai-service/models"
)

// ErrItemNotInCart is returned when an update or remove targets a product
// id that has no cart line.
var ErrItemNotInCart = errors.New("item not in cart")

// Delivery is free at or above the threshold, otherwise a flat charge.
const (
	freeDeliveryThreshold = 999
	deliveryCharge        = 99
)

// Store holds the single process-wide cart: a mapping from product id to
// cart line. There is no per-user isolation; every request sees the same
// cart. All mutations are serialized through the mutex.
type Store struct {
	mu      sync.RWMutex
	lines   map[int]*models.CartLine
	catalog *catalog.Reader
}

func NewStore(catalogReader *catalog.Reader) *Store {
	return &Store{
		lines:   make(map[int]*models.CartLine),
		catalog: catalogReader,
	}
}

// AddItem adds quantity of a product to the cart. If the product already
// has a line, only its quantity is incremented; the size and color of the
// new request are ignored so that the one-line-per-product invariant wins
// over conflicting attributes on repeated adds.
func (s *Store) AddItem(productID, quantity int, size, color string) error {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if line, exists := s.lines[productID]; exists {
		line.Quantity += quantity
		return nil
	}
	s.lines[productID] = &models.CartLine{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}
	return nil
}

// UpdateItem replaces the line for a product wholesale, including size and
// color.
func (s *Store) UpdateItem(productID, quantity int, size, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lines[productID]; !exists {
		return ErrItemNotInCart
	}
	s.lines[productID] = &models.CartLine{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}
	return nil
}

func (s *Store) RemoveItem(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lines[productID]; !exists {
		return ErrItemNotInCart
	}
	delete(s.lines, productID)
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int]*models.CartLine)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Snapshot joins the cart lines against the catalog and prices them out.
// Lines whose product id no longer resolves are skipped silently (the
// catalog may have changed underneath the cart). Amounts accumulate in
// full precision and are rounded to 2 decimal places only when emitted.
func (s *Store) Snapshot() (models.CartSnapshot, error) {
	byID, err := s.productIndex()
	if err != nil {
		return models.CartSnapshot{}, err
	}

	s.mu.RLock()
	lines := copyLines(s.lines)
	s.mu.RUnlock()

	return priceLines(byID, lines), nil
}

// SnapshotAndClear prices the cart and empties it inside one critical
// section: a line added concurrently is either part of the returned
// snapshot or still in the cart afterwards, never lost. The cart is left
// untouched when the catalog cannot be read.
func (s *Store) SnapshotAndClear() (models.CartSnapshot, error) {
	byID, err := s.productIndex()
	if err != nil {
		return models.CartSnapshot{}, err
	}

	s.mu.Lock()
	lines := copyLines(s.lines)
	s.lines = make(map[int]*models.CartLine)
	s.mu.Unlock()

	return priceLines(byID, lines), nil
}

func (s *Store) productIndex() (map[int]models.Product, error) {
	products, err := s.catalog.ListAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func copyLines(m map[int]*models.CartLine) []models.CartLine {
	lines := make([]models.CartLine, 0, len(m))
	for _, line := range m {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

func priceLines(byID map[int]models.Product, lines []models.CartLine) models.CartSnapshot {
	items := make([]models.SnapshotItem, 0, len(lines))
	var subtotal, totalDiscount float64
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		itemSubtotal := product.Price * float64(line.Quantity)
		itemDiscount := itemSubtotal * float64(product.Discount) / 100
		items = append(items, models.SnapshotItem{
			Product:      product,
			Quantity:     line.Quantity,
			Size:         line.Size,
			Color:        line.Color,
			ItemSubtotal: Round2(itemSubtotal),
			ItemDiscount: Round2(itemDiscount),
			ItemTotal:    Round2(itemSubtotal - itemDiscount),
		})
		subtotal += itemSubtotal
		totalDiscount += itemDiscount
	}

	var delivery float64
	if subtotal < freeDeliveryThreshold {
		delivery = deliveryCharge
	}

	return models.CartSnapshot{
		Items:          items,
		Subtotal:       Round2(subtotal),
		Discount:       Round2(totalDiscount),
		DeliveryCharge: delivery,
		Total:          Round2(subtotal - totalDiscount + delivery),
		ItemCount:      len(items),
	}
}

// Round2 rounds a monetary amount to 2 decimal places. Amounts accumulate
// in full precision and round only when emitted.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
