package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a production order in the system. It is the aggregate root that
// manages the fulfillment lifecycle from creation through per-team progress
// reporting to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must assign at least one line item to at least one team
//   - Line item identifiers are unique within the order
//   - Recorded progress per item never exceeds its ordered quantity
//   - Becomes Completed exactly when every item of every team is completed
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-facing business key, unique across orders
	orderNumber string

	// dispatcherName identifies who placed the order
	dispatcherName string

	// customerName identifies the customer the order is produced for
	customerName string

	// status represents the current state in the fulfillment lifecycle
	status Status

	// details maps each team to the line items it is responsible for
	details map[Team][]*LineItem

	// createdAt is when the order entered the system
	createdAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// (besides RestoreOrder) to create a valid Order, ensuring all business
// invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - orderNumber: Business key for the order (must not be empty)
//   - dispatcherName: Name of the dispatcher placing the order (must not be empty)
//   - customerName: Name of the customer (must not be empty)
//   - details: Line items grouped by team; at least one team must have at least one item
//   - createdAt: Creation timestamp (must not be zero)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// The constructor validates all inputs and ensures the order is created
// with Pending status and no recorded progress.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	dispatcherName string,
	customerName string,
	details map[Team][]*LineItem,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setDispatcherName(dispatcherName),
		order.setCustomerName(customerName),
		order.setDetails(details),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence with an explicit status.
// It applies the same field validation as NewOrder and additionally verifies
// that the persisted status is consistent with the items' tracking state.
//
// This function should only be used when loading orders from storage.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	dispatcherName string,
	customerName string,
	status Status,
	details map[Team][]*LineItem,
	createdAt time.Time,
) (*Order, error) {
	order, err := NewOrder(id, orderNumber, dispatcherName, customerName, details, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a factory method
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the order's business key.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// DispatcherName returns the name of the dispatcher who placed the order.
func (o *Order) DispatcherName() string {
	return o.dispatcherName
}

// CustomerName returns the name of the customer.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order entered the system.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Teams returns the teams that have line items on this order,
// in the canonical team order.
func (o *Order) Teams() []Team {
	teams := make([]Team, 0, len(o.details))
	for _, team := range Teams() {
		if len(o.details[team]) > 0 {
			teams = append(teams, team)
		}
	}
	return teams
}

// Items returns the line items assigned to the given team.
// Returns nil if the team has no items on this order.
func (o *Order) Items(team Team) []*LineItem {
	return o.details[team]
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the order's business key.
// This is a private method used only during construction.
func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

// setDispatcherName validates and sets the dispatcher's name.
// This is a private method used only during construction.
func (o *Order) setDispatcherName(dispatcherName string) error {
	if dispatcherName == "" {
		return errs.NewValueIsRequiredError("dispatcherName")
	}
	o.dispatcherName = dispatcherName
	return nil
}

// setCustomerName validates and sets the customer's name.
// This is a private method used only during construction.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

// setDetails validates and sets the per-team line items.
// At least one team must carry at least one item, all teams must be
// known, and item identifiers must be unique across the whole order.
// This is a private method used only during construction.
func (o *Order) setDetails(details map[Team][]*LineItem) error {
	itemCount := 0
	seen := make(map[kernel.UUID]struct{})

	for team, items := range details {
		if err := team.Validate(); err != nil {
			return err
		}
		for _, item := range items {
			if item == nil {
				return errs.NewValueIsRequiredError("item")
			}
			if _, ok := seen[item.ID()]; ok {
				return errs.NewValueIsInvalidErrorWithCause("details is invalid",
					fmt.Errorf("duplicate line item id %s", item.ID()))
			}
			seen[item.ID()] = struct{}{}
			itemCount++
		}
	}

	if itemCount == 0 {
		return errs.NewValueIsInvalidErrorWithCause("details is invalid",
			errors.New("at least one team must have at least one line item"))
	}

	o.details = details
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
// This is a private method used only during construction.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
