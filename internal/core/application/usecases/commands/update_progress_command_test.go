package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateProgressCommand(t *testing.T) {
	items := []commands.ProgressItem{
		{ItemID: kernel.NewUUID().String(), QtyCompleted: 200},
	}

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewUpdateProgressCommand("PG-2026-0042", order.TeamGlass, "Ravi", items)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "PG-2026-0042", cmd.OrderNumber())
		assert.Equal(t, order.TeamGlass, cmd.Team())
		assert.Equal(t, "Ravi", cmd.UpdatedBy())
		assert.Equal(t, items, cmd.Items())
	})

	t.Run("should fail with empty order number", func(t *testing.T) {
		_, err := commands.NewUpdateProgressCommand("", order.TeamGlass, "Ravi", items)

		require.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
	})

	t.Run("should fail with invalid team", func(t *testing.T) {
		_, err := commands.NewUpdateProgressCommand("PG-2026-0042", order.Team("labels"), "Ravi", items)

		require.Error(t, err)
	})

	t.Run("should fail with empty reporter", func(t *testing.T) {
		_, err := commands.NewUpdateProgressCommand("PG-2026-0042", order.TeamGlass, "", items)

		require.ErrorIs(t, err, commands.ErrUpdatedByIsRequired)
	})

	t.Run("should fail with empty batch", func(t *testing.T) {
		_, err := commands.NewUpdateProgressCommand("PG-2026-0042", order.TeamGlass, "Ravi", nil)

		require.ErrorIs(t, err, commands.ErrProgressItemsAreRequired)
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		bad := []commands.ProgressItem{{ItemID: kernel.NewUUID().String(), QtyCompleted: 0}}

		_, err := commands.NewUpdateProgressCommand("PG-2026-0042", order.TeamGlass, "Ravi", bad)

		require.ErrorIs(t, err, commands.ErrQtyCompletedMustBePositive)
	})

	t.Run("should accept unresolvable item ids", func(t *testing.T) {
		// malformed IDs are skipped during handling, not rejected here
		odd := []commands.ProgressItem{{ItemID: "not-a-uuid", QtyCompleted: 5}}

		_, err := commands.NewUpdateProgressCommand("PG-2026-0042", order.TeamGlass, "Ravi", odd)

		require.NoError(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.UpdateProgressCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateProgressCommandIsNotConstructed)
	})
}
