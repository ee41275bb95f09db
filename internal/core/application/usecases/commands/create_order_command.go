package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired    = errors.New("orderNumber is required")
	ErrDispatcherNameIsRequired = errors.New("dispatcherName is required")
	ErrCustomerNameIsRequired   = errors.New("customerName is required")
	ErrOrderItemsAreRequired    = errors.New("at least one team must have at least one item")
)

// OrderItem describes a single requested line item within a create
// order command. Quantity is the total amount the team has to produce.
type OrderItem struct {
	Name     string
	Quantity int
}

// CreateOrderCommand represents a request to place a new production order.
// Encapsulates the order's business key, the people involved and the
// per-team line items to be produced.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("PG-2026-0042", "Asha", "Herbal Care Ltd",
//	    map[order.Team][]OrderItem{
//	        order.TeamGlass: {{Name: "500ml round bottle", Quantity: 1000}},
//	    })
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber    string
	dispatcherName string
	customerName   string
	details        map[order.Team][]OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new production order.
// Validates that the order number, dispatcher and customer are present, that
// every team is known, and that at least one team carries at least one item
// with a name and a positive quantity.
func NewCreateOrderCommand(
	orderNumber string,
	dispatcherName string,
	customerName string,
	details map[order.Team][]OrderItem,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderNumber(orderNumber),
		orderCommand.setDispatcherName(dispatcherName),
		orderCommand.setCustomerName(customerName),
		orderCommand.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderNumber returns the business key for the new order.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// DispatcherName returns the name of the dispatcher placing the order.
func (c CreateOrderCommand) DispatcherName() string {
	return c.dispatcherName
}

// CustomerName returns the name of the customer.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Details returns the requested line items grouped by team.
func (c CreateOrderCommand) Details() map[order.Team][]OrderItem {
	return c.details
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setDispatcherName(dispatcherName string) error {
	if dispatcherName == "" {
		return ErrDispatcherNameIsRequired
	}

	c.dispatcherName = dispatcherName
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setDetails(details map[order.Team][]OrderItem) error {
	itemCount := 0
	for team, items := range details {
		if err := team.Validate(); err != nil {
			return err
		}
		for _, item := range items {
			if item.Name == "" {
				return fmt.Errorf("team %s: item name is required", team)
			}
			if item.Quantity <= 0 {
				return fmt.Errorf("team %s: item %q: quantity must be greater than 0", team, item.Name)
			}
			itemCount++
		}
	}
	if itemCount == 0 {
		return ErrOrderItemsAreRequired
	}

	c.details = details
	return nil
}
