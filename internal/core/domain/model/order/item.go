package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	// ErrProductNameIsRequired is returned when creating an item without a product name.
	ErrProductNameIsRequired = errs.NewValueIsRequiredError("product name")
)

// Item is an immutable order line item. Product, quantity, and unit price are
// fixed when the order is placed; later catalog price changes never affect an
// existing order's items or total.
type Item struct {
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money
	guard       guard.ConstructorGuard
}

// NewItem creates a validated line item.
//
// Parameters:
//   - productID: catalog reference (must be a valid UUID)
//   - productName: display name captured at purchase time (must be non-empty)
//   - quantity: number of units (must be positive)
//   - unitPrice: price per unit at purchase time
func NewItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if productName == "" {
		return Item{}, ErrProductNameIsRequired
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Item{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog reference of the item.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name captured at purchase time.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at purchase time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MultiplyBy(i.quantity)
}
