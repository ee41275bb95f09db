package order_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// progressFixture builds a two-team order: glass produces two bottle
// items, caps produces one cap item.
type progressFixture struct {
	order   *order.Order
	bottleA *order.LineItem
	bottleB *order.LineItem
	cap     *order.LineItem
}

func newProgressFixture(t *testing.T) progressFixture {
	t.Helper()

	bottleA := mustLineItem(t, "500ml round bottle", 1000)
	bottleB := mustLineItem(t, "250ml square bottle", 500)
	capItem := mustLineItem(t, "28mm screw cap", 1500)

	o, err := order.NewOrder(kernel.NewUUID(), "PG-2026-0042", "Asha", "Herbal Care Ltd",
		map[order.Team][]*order.LineItem{
			order.TeamGlass: {bottleA, bottleB},
			order.TeamCaps:  {capItem},
		},
		time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	return progressFixture{order: o, bottleA: bottleA, bottleB: bottleB, cap: capItem}
}

func TestOrder_ApplyProgress(t *testing.T) {
	now := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	t.Run("should accumulate partial completions", func(t *testing.T) {
		f := newProgressFixture(t)

		skipped, err := f.order.ApplyProgress(order.TeamGlass,
			[]order.ProgressUpdate{{ItemID: f.bottleA.ID(), Qty: 400}}, now)
		require.NoError(t, err)
		assert.Empty(t, skipped)

		later := now.Add(2 * time.Hour)
		skipped, err = f.order.ApplyProgress(order.TeamGlass,
			[]order.ProgressUpdate{{ItemID: f.bottleA.ID(), Qty: 600}}, later)
		require.NoError(t, err)
		assert.Empty(t, skipped)

		assert.Equal(t, 1000, f.bottleA.Tracking().TotalCompleted())
		assert.Equal(t, 0, f.bottleA.Remaining())
		assert.True(t, f.bottleA.IsCompleted())

		entries := f.bottleA.Tracking().Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, order.CompletionEntry{Qty: 400, RecordedAt: now}, entries[0])
		assert.Equal(t, order.CompletionEntry{Qty: 600, RecordedAt: later}, entries[1])

		// other items untouched, order still has outstanding work
		assert.Nil(t, f.bottleB.Tracking())
		assert.Equal(t, order.Pending, f.order.Status())
	})

	t.Run("should apply a multi-item batch atomically", func(t *testing.T) {
		f := newProgressFixture(t)

		skipped, err := f.order.ApplyProgress(order.TeamGlass, []order.ProgressUpdate{
			{ItemID: f.bottleA.ID(), Qty: 300},
			{ItemID: f.bottleB.ID(), Qty: 500},
		}, now)

		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, 300, f.bottleA.Tracking().TotalCompleted())
		assert.True(t, f.bottleB.IsCompleted())
	})

	t.Run("should reject whole batch when one update over-reports", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamGlass,
			[]order.ProgressUpdate{{ItemID: f.bottleA.ID(), Qty: 700}}, now)
		require.NoError(t, err)

		_, err = f.order.ApplyProgress(order.TeamGlass, []order.ProgressUpdate{
			{ItemID: f.bottleB.ID(), Qty: 100},
			{ItemID: f.bottleA.ID(), Qty: 400},
		}, now)

		require.Error(t, err)
		var qtyErr *order.QuantityExceededError
		require.ErrorAs(t, err, &qtyErr)
		assert.True(t, qtyErr.ItemID.IsEqual(f.bottleA.ID()))
		assert.Equal(t, 300, qtyErr.MaxAllowed)
		assert.Equal(t, 400, qtyErr.Requested)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		// nothing from the failed batch was applied
		assert.Nil(t, f.bottleB.Tracking())
		assert.Equal(t, 700, f.bottleA.Tracking().TotalCompleted())
		assert.Len(t, f.bottleA.Tracking().Entries(), 1)
	})

	t.Run("should check quantities cumulatively within a batch", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamCaps, []order.ProgressUpdate{
			{ItemID: f.cap.ID(), Qty: 1000},
			{ItemID: f.cap.ID(), Qty: 600},
		}, now)

		require.Error(t, err)
		var qtyErr *order.QuantityExceededError
		require.ErrorAs(t, err, &qtyErr)
		assert.Equal(t, 500, qtyErr.MaxAllowed)
		assert.Equal(t, 600, qtyErr.Requested)
		assert.Nil(t, f.cap.Tracking())
	})

	t.Run("should allow split updates for one item within a batch", func(t *testing.T) {
		f := newProgressFixture(t)

		skipped, err := f.order.ApplyProgress(order.TeamCaps, []order.ProgressUpdate{
			{ItemID: f.cap.ID(), Qty: 1000},
			{ItemID: f.cap.ID(), Qty: 500},
		}, now)

		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.True(t, f.cap.IsCompleted())
		assert.Len(t, f.cap.Tracking().Entries(), 2)
	})

	t.Run("should skip items not belonging to the team", func(t *testing.T) {
		f := newProgressFixture(t)
		strangerID := kernel.NewUUID()

		skipped, err := f.order.ApplyProgress(order.TeamGlass, []order.ProgressUpdate{
			{ItemID: f.bottleA.ID(), Qty: 100},
			{ItemID: strangerID, Qty: 50},
			{ItemID: f.cap.ID(), Qty: 50}, // caps item reported by glass team
		}, now)

		require.NoError(t, err)
		require.Len(t, skipped, 2)
		assert.True(t, skipped[0].IsEqual(strangerID))
		assert.True(t, skipped[1].IsEqual(f.cap.ID()))

		assert.Equal(t, 100, f.bottleA.Tracking().TotalCompleted())
		assert.Nil(t, f.cap.Tracking())
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		f := newProgressFixture(t)

		for _, qty := range []int{0, -10} {
			_, err := f.order.ApplyProgress(order.TeamGlass,
				[]order.ProgressUpdate{{ItemID: f.bottleA.ID(), Qty: qty}}, now)

			require.Error(t, err, "qty %d", qty)
			assert.Contains(t, err.Error(), "qtyCompleted is invalid")
		}
		assert.Nil(t, f.bottleA.Tracking())
	})

	t.Run("should reject empty batch", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamGlass, nil, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "updates")
	})

	t.Run("should reject invalid team", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.Team("labels"),
			[]order.ProgressUpdate{{ItemID: f.bottleA.ID(), Qty: 10}}, now)

		require.Error(t, err)
	})

	t.Run("should reject progress on unconstructed order", func(t *testing.T) {
		o := &order.Order{}

		_, err := o.ApplyProgress(order.TeamGlass,
			[]order.ProgressUpdate{{ItemID: kernel.NewUUID(), Qty: 1}}, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, order.ErrOrderIsNotConstructed))
	})
}

func TestOrder_ApplyProgress_Completion(t *testing.T) {
	now := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	t.Run("should complete order only when every team is done", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamGlass, []order.ProgressUpdate{
			{ItemID: f.bottleA.ID(), Qty: 1000},
			{ItemID: f.bottleB.ID(), Qty: 500},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, order.Pending, f.order.Status(), "caps still outstanding")

		_, err = f.order.ApplyProgress(order.TeamCaps,
			[]order.ProgressUpdate{{ItemID: f.cap.ID(), Qty: 1500}}, now)
		require.NoError(t, err)

		assert.Equal(t, order.Completed, f.order.Status())
	})

	t.Run("should keep order pending while any item is unreported", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamGlass,
			[]order.ProgressUpdate{{ItemID: f.bottleA.ID(), Qty: 1000}}, now)
		require.NoError(t, err)
		_, err = f.order.ApplyProgress(order.TeamCaps,
			[]order.ProgressUpdate{{ItemID: f.cap.ID(), Qty: 1500}}, now)
		require.NoError(t, err)

		// bottleB has never been reported on
		assert.Equal(t, order.Pending, f.order.Status())
	})

	t.Run("should reject further reports once item is fully produced", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamCaps,
			[]order.ProgressUpdate{{ItemID: f.cap.ID(), Qty: 1500}}, now)
		require.NoError(t, err)

		_, err = f.order.ApplyProgress(order.TeamCaps,
			[]order.ProgressUpdate{{ItemID: f.cap.ID(), Qty: 1}}, now)

		var qtyErr *order.QuantityExceededError
		require.ErrorAs(t, err, &qtyErr)
		assert.Equal(t, 0, qtyErr.MaxAllowed)
	})

	t.Run("should keep completed status final", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.order.ApplyProgress(order.TeamGlass, []order.ProgressUpdate{
			{ItemID: f.bottleA.ID(), Qty: 1000},
			{ItemID: f.bottleB.ID(), Qty: 500},
		}, now)
		require.NoError(t, err)
		_, err = f.order.ApplyProgress(order.TeamCaps,
			[]order.ProgressUpdate{{ItemID: f.cap.ID(), Qty: 1500}}, now)
		require.NoError(t, err)
		require.Equal(t, order.Completed, f.order.Status())

		// skipped-only batches are accepted but change nothing
		skipped, err := f.order.ApplyProgress(order.TeamGlass,
			[]order.ProgressUpdate{{ItemID: kernel.NewUUID(), Qty: 10}}, now)
		require.NoError(t, err)
		assert.Len(t, skipped, 1)
		assert.Equal(t, order.Completed, f.order.Status())
	})
}
