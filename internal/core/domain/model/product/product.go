package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is the sentinel for reservation failures. Match it with
	// errors.Is; the concrete InsufficientStockError carries the product and quantities.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a reservation that asked for more units than
// the product has available. The failing product and both quantities are
// carried so callers can report exactly which line of a multi-line
// reservation failed.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for the given
// product and quantities.
func NewInsufficientStockError(productID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s: requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is the aggregate root for a sellable item and its stock record.
//
// Product follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Price must be a valid non-negative amount
//   - Available quantity never drops below zero
//   - InStock is always derived from the quantity, never stored independently
//
// Reserve and Release express the in-memory ledger rules; the persistence
// layer enforces the same non-negative invariant with a conditional decrement
// so concurrent reservations cannot oversell.
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// name is the display name of the product
	name string

	// sku is the merchant's stock keeping unit
	sku string

	// price is the current unit price
	price kernel.Money

	// quantity is the number of units available for reservation
	quantity int

	// guard ensures the product was created via NewProduct
	guard guard.ConstructorGuard
}

// NewProduct creates a new Product instance with validation. This is the only
// way to create a valid Product, ensuring all invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the product (must be valid UUID)
//   - name: Display name (required)
//   - sku: Stock keeping unit (required)
//   - price: Unit price (non-negative)
//   - quantity: Initial available units (non-negative)
//
// Returns:
//   - *Product: The created product if all validations pass
//   - error: Validation error if any parameter is invalid
func NewProduct(id kernel.UUID, name, sku string, price kernel.Money, quantity int) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setSKU(sku),
		p.setPrice(price),
		p.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product aggregate from persistent storage.
// Unlike NewProduct it performs no business-level defaulting; the restored
// product carries exactly the persisted state.
func RestoreProduct(id kernel.UUID, name, sku string, price kernel.Money, quantity int) (*Product, error) {
	return NewProduct(id, name, sku, price, quantity)
}

// Validate ensures the Product instance was properly constructed through NewProduct.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// SKU returns the product's stock keeping unit.
func (p *Product) SKU() string {
	return p.sku
}

// Price returns the current unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Quantity returns the number of units currently available.
func (p *Product) Quantity() int {
	return p.quantity
}

// InStock reports whether at least one unit is available.
// It is always derived from the quantity.
func (p *Product) InStock() bool {
	return p.quantity > 0
}

// Reserve removes qty units from the available stock.
//
// Business rules:
//   - qty must be positive
//   - the available quantity must cover the request in full; partial
//     reservations are never performed
//
// Returns:
//   - nil on success
//   - *InsufficientStockError if fewer than qty units are available
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	if qty > p.quantity {
		return NewInsufficientStockError(p.id, qty, p.quantity)
	}

	p.quantity -= qty
	return nil
}

// Release returns qty units to the available stock, for example when an
// order is cancelled.
//
// Business rules:
//   - qty must be positive
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}

	p.quantity += qty
	return nil
}

// setID validates and sets the product's unique identifier.
func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setName validates and sets the product's display name.
func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

// setSKU validates and sets the product's stock keeping unit.
func (p *Product) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

// setPrice sets the product's unit price.
func (p *Product) setPrice(price kernel.Money) error {
	p.price = price
	return nil
}

// setQuantity validates and sets the initial available quantity.
func (p *Product) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	p.quantity = quantity
	return nil
}
