package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// CompletionEntry records a single accepted progress report against a
// line item. Entries are append-only: once recorded they are never
// amended or removed.
type CompletionEntry struct {
	Qty        int
	RecordedAt time.Time
}

// TeamTracking accumulates the production history of a single line
// item. totalCompleted always equals the sum of entry quantities and
// never exceeds the item's ordered quantity.
type TeamTracking struct {
	totalCompleted int
	entries        []CompletionEntry
	status         Status
}

// RestoreTeamTracking rebuilds tracking state from persistence.
// The invariant between totalCompleted and entries is assumed to hold
// because it was enforced when the entries were recorded.
func RestoreTeamTracking(totalCompleted int, entries []CompletionEntry, status Status) (*TeamTracking, error) {
	if totalCompleted < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalCompleted is invalid",
			fmt.Errorf("%d is negative", totalCompleted))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &TeamTracking{
		totalCompleted: totalCompleted,
		entries:        append([]CompletionEntry(nil), entries...),
		status:         status,
	}, nil
}

// TotalCompleted returns the cumulative quantity reported so far.
func (t *TeamTracking) TotalCompleted() int {
	if t == nil {
		return 0
	}
	return t.totalCompleted
}

// Entries returns a copy of the recorded completion history.
func (t *TeamTracking) Entries() []CompletionEntry {
	if t == nil {
		return nil
	}
	return append([]CompletionEntry(nil), t.entries...)
}

// Status returns Pending or Completed for the tracked item.
func (t *TeamTracking) Status() Status {
	if t == nil {
		return Pending
	}
	return t.status
}

// LineItem is a single deliverable within an order, owned by exactly
// one team. Quantity is fixed at creation; production progress is
// accumulated in the tracking history.
type LineItem struct {
	id       kernel.UUID
	name     string
	quantity int
	tracking *TeamTracking
}

// NewLineItem creates a line item with no recorded progress.
//
// Parameters:
//   - id: Unique identifier for the item (must be valid UUID)
//   - name: Human-readable item name (must not be empty)
//   - quantity: Ordered quantity (must be positive)
//
// Returns:
//   - *LineItem: The created item if all validations pass
//   - error: Validation error if any parameter is invalid
func NewLineItem(id kernel.UUID, name string, quantity int) (*LineItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &LineItem{id: id, name: name, quantity: quantity}, nil
}

// RestoreLineItem rebuilds a line item from persistence, including its
// tracking history. tracking may be nil when the item has never been
// reported on.
func RestoreLineItem(id kernel.UUID, name string, quantity int, tracking *TeamTracking) (*LineItem, error) {
	item, err := NewLineItem(id, name, quantity)
	if err != nil {
		return nil, err
	}
	if tracking != nil && tracking.totalCompleted > quantity {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalCompleted is invalid",
			fmt.Errorf("%d exceeds ordered quantity %d", tracking.totalCompleted, quantity))
	}

	item.tracking = tracking
	return item, nil
}

// ID returns the item's unique identifier.
func (i *LineItem) ID() kernel.UUID {
	return i.id
}

// Name returns the item's display name.
func (i *LineItem) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i *LineItem) Quantity() int {
	return i.quantity
}

// Tracking returns the item's production history.
// Returns nil if no progress has ever been reported.
func (i *LineItem) Tracking() *TeamTracking {
	return i.tracking
}

// Remaining returns the quantity still outstanding.
func (i *LineItem) Remaining() int {
	return i.quantity - i.tracking.TotalCompleted()
}

// IsCompleted reports whether the full ordered quantity has been
// produced. An item nobody has reported on is not completed.
func (i *LineItem) IsCompleted() bool {
	return i.tracking != nil && i.tracking.status == Completed
}

// applyCompletion records an already-validated progress report.
// Callers must have checked qty against Remaining beforehand.
func (i *LineItem) applyCompletion(qty int, now time.Time) {
	if i.tracking == nil {
		i.tracking = &TeamTracking{status: Pending}
	}

	i.tracking.totalCompleted += qty
	i.tracking.entries = append(i.tracking.entries, CompletionEntry{Qty: qty, RecordedAt: now})
	if i.tracking.totalCompleted >= i.quantity {
		i.tracking.status = Completed
	}
}
