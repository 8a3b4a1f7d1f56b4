package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReturnRequestedMarker is the return marker written when a return is first
// filed for an item. Later markers mirror the return request's own status
// strings as the workflow progresses.
const ReturnRequestedMarker = "requested"

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line: a product snapshot taken at order time plus the
// ordered quantity. The name and unit price are copied from the catalog so
// later catalog edits never change what the customer agreed to pay.
//
// returnStatus is a denormalized marker mirroring the item's active return
// request, maintained by the aggregate so list views can show return state
// without joining the returns table.
type Item struct {
	id           kernel.UUID
	productID    kernel.UUID
	name         string
	unitPrice    kernel.Money
	quantity     int
	returnStatus string
}

// NewItem creates an order line with validation.
func NewItem(id, productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (*Item, error) {
	item := &Item{}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an order line from persistent storage, including
// its denormalized return marker.
func RestoreItem(id, productID kernel.UUID, name string, unitPrice kernel.Money, quantity int, returnStatus string) (*Item, error) {
	item, err := NewItem(id, productID, name, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	item.returnStatus = returnStatus
	return item, nil
}

// Validate ensures the item carries a constructed identifier.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	if err := i.id.Validate(); err != nil {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the order line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the ordered product.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name as snapshotted at order time.
func (i *Item) Name() string {
	return i.name
}

// UnitPrice returns the unit price as snapshotted at order time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// LineTotal returns unit price times quantity.
func (i *Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

// ReturnStatus returns the denormalized return marker, empty when the item
// has no active return request.
func (i *Item) ReturnStatus() string {
	return i.returnStatus
}

// markReturn records the item's active return state. Managed by the Order
// aggregate on behalf of the returns workflow.
func (i *Item) markReturn(status string) {
	i.returnStatus = status
}

// clearReturn removes the return marker, for example when the return request
// is cancelled.
func (i *Item) clearReturn() {
	i.returnStatus = ""
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
