package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateProgressCommandIsNotConstructed = errors.New(
		"UpdateProgressCommand must be created via NewUpdateProgressCommand constructor",
	)
	ErrUpdatedByIsRequired        = errors.New("updatedBy is required")
	ErrProgressItemsAreRequired   = errors.New("at least one progress item is required")
	ErrQtyCompletedMustBePositive = errors.New("qtyCompleted must be greater than 0")
)

// ProgressItem reports a completed quantity against one line item.
// ItemID is the line item identifier as supplied by the client; IDs that
// do not resolve to an item of the reporting team are skipped, not
// rejected.
type ProgressItem struct {
	ItemID       string
	QtyCompleted int
}

// UpdateProgressCommand represents one team's batch of completion
// reports against a single order.
type UpdateProgressCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	team        order.Team
	updatedBy   string
	items       []ProgressItem

	guard guard.ConstructorGuard
}

// NewUpdateProgressCommand creates a command carrying a team's progress batch.
// Validates that the order number and reporter are present, the team is
// known, and the batch is non-empty with positive quantities. Item IDs are
// not resolved here; unknown IDs surface as skipped during handling.
func NewUpdateProgressCommand(
	orderNumber string,
	team order.Team,
	updatedBy string,
	items []ProgressItem,
) (UpdateProgressCommand, error) {
	cmd := UpdateProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setTeam(team),
		cmd.setUpdatedBy(updatedBy),
		cmd.setItems(items),
	); err != nil {
		return UpdateProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateProgressCommandIsNotConstructed if validation fails.
func (c UpdateProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProgressCommandIsNotConstructed)
}

// OrderNumber returns the business key of the order being reported on.
func (c UpdateProgressCommand) OrderNumber() string {
	return c.orderNumber
}

// Team returns the reporting team.
func (c UpdateProgressCommand) Team() order.Team {
	return c.team
}

// UpdatedBy returns the name of the person reporting the progress.
func (c UpdateProgressCommand) UpdatedBy() string {
	return c.updatedBy
}

// Items returns the batch of progress reports.
func (c UpdateProgressCommand) Items() []ProgressItem {
	return c.items
}

func (c *UpdateProgressCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *UpdateProgressCommand) setTeam(team order.Team) error {
	if err := team.Validate(); err != nil {
		return err
	}

	c.team = team
	return nil
}

func (c *UpdateProgressCommand) setUpdatedBy(updatedBy string) error {
	if updatedBy == "" {
		return ErrUpdatedByIsRequired
	}

	c.updatedBy = updatedBy
	return nil
}

func (c *UpdateProgressCommand) setItems(items []ProgressItem) error {
	if len(items) == 0 {
		return ErrProgressItemsAreRequired
	}
	for _, item := range items {
		if item.QtyCompleted <= 0 {
			return fmt.Errorf("item %q: %w", item.ItemID, ErrQtyCompletedMustBePositive)
		}
	}

	c.items = items
	return nil
}
