package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ProgressUpdate reports a completed quantity for a single line item.
type ProgressUpdate struct {
	ItemID kernel.UUID
	Qty    int
}

// QuantityExceededError is returned when a progress report claims more
// quantity than a line item still has outstanding. It carries enough
// detail for callers to tell the reporter what the cap was.
type QuantityExceededError struct {
	ItemID     kernel.UUID
	MaxAllowed int
	Requested  int
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("quantity exceeded for item %s: requested %d, max allowed %d",
		e.ItemID, e.Requested, e.MaxAllowed)
}

func (e *QuantityExceededError) Unwrap() error {
	return errs.ErrValueIsOutOfRange
}

// NewQuantityExceededError creates a QuantityExceededError for the given item.
func NewQuantityExceededError(itemID kernel.UUID, maxAllowed, requested int) *QuantityExceededError {
	return &QuantityExceededError{ItemID: itemID, MaxAllowed: maxAllowed, Requested: requested}
}

// resolvedUpdate pairs an update with the line item it targets after
// the validation pass has resolved and bounds-checked it.
type resolvedUpdate struct {
	item *LineItem
	qty  int
}

// ApplyProgress applies a batch of progress reports from one team to the
// order, atomically: either every resolvable update in the batch is
// recorded, or none is.
//
// The method runs in two phases. The validation phase resolves every
// update against the team's line items and checks quantities without
// mutating anything; item IDs that do not belong to the team are
// collected as skipped rather than treated as errors. The mutation
// phase runs only if validation found no violation, appending a
// completion entry per resolved update and recomputing item and order
// status.
//
// Quantity checks are cumulative within the batch: two updates against
// the same item must fit the item's outstanding quantity together.
//
// Parameters:
//   - team: The reporting team (must be valid and have items on this order)
//   - updates: Non-empty batch of progress reports
//   - now: Timestamp recorded on each completion entry
//
// Returns:
//   - []kernel.UUID: IDs from the batch that matched no line item of the team
//   - error: nil on success; *QuantityExceededError if any update over-reports;
//     validation error for a bad team, an empty batch, or a non-positive quantity
//
// On any non-nil error the order is unchanged.
func (o *Order) ApplyProgress(team Team, updates []ProgressUpdate, now time.Time) ([]kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := team.Validate(); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, errs.NewValueIsRequiredError("updates")
	}

	items := make(map[kernel.UUID]*LineItem, len(o.details[team]))
	for _, item := range o.details[team] {
		items[item.ID()] = item
	}

	var skipped []kernel.UUID
	resolved := make([]resolvedUpdate, 0, len(updates))
	planned := make(map[kernel.UUID]int)

	for _, update := range updates {
		item, ok := items[update.ItemID]
		if !ok {
			skipped = append(skipped, update.ItemID)
			continue
		}
		if update.Qty <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("qtyCompleted is invalid",
				fmt.Errorf("%d is not greater than 0", update.Qty))
		}

		remaining := item.Remaining() - planned[update.ItemID]
		if update.Qty > remaining {
			return nil, NewQuantityExceededError(update.ItemID, remaining, update.Qty)
		}

		planned[update.ItemID] += update.Qty
		resolved = append(resolved, resolvedUpdate{item: item, qty: update.Qty})
	}

	for _, r := range resolved {
		r.item.applyCompletion(r.qty, now)
	}

	o.recomputeStatus()
	return skipped, nil
}

// recomputeStatus promotes the order to Completed once every line item
// of every team is completed. The transition is one-way: quantities
// only ever grow, so a Completed order never reverts.
func (o *Order) recomputeStatus() {
	if o.status.IsFinal() {
		return
	}

	for _, items := range o.details {
		for _, item := range items {
			if !item.IsCompleted() {
				return
			}
		}
	}

	if newStatus, err := o.status.Complete(); err == nil {
		o.status = newStatus
	}
}
