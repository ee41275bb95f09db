package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should pass for valid statuses", func(t *testing.T) {
		require.NoError(t, order.Pending.Validate())
		require.NoError(t, order.Completed.Validate())
	})

	t.Run("should fail for unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should fail for out of range status", func(t *testing.T) {
		err := order.Status(42).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "42 is not a valid status")
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Completed", order.Completed.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse valid status names", func(t *testing.T) {
		s, err := order.StatusFromString("Pending")
		require.NoError(t, err)
		assert.Equal(t, order.Pending, s)

		s, err = order.StatusFromString("Completed")
		require.NoError(t, err)
		assert.Equal(t, order.Completed, s)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "pending", "Done"} {
			_, err := order.StatusFromString(name)
			require.Error(t, err, "name %q", name)
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should transition pending to completed", func(t *testing.T) {
		s, err := order.Pending.Complete()

		require.NoError(t, err)
		assert.Equal(t, order.Completed, s)
	})

	t.Run("should reject completing a completed status", func(t *testing.T) {
		_, err := order.Completed.Complete()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Completed is not a valid status to complete")
	})

	t.Run("should reject completing an unknown status", func(t *testing.T) {
		_, err := order.Unknown.Complete()

		require.Error(t, err)
	})
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.Completed.IsFinal())
	assert.False(t, order.Pending.IsFinal())
	assert.False(t, order.Unknown.IsFinal())
}

func TestTeamFromString(t *testing.T) {
	t.Run("should parse all known teams", func(t *testing.T) {
		for _, name := range []string{"glass", "caps", "boxes", "pumps"} {
			team, err := order.TeamFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, team.String())
		}
	})

	t.Run("should reject unknown team names", func(t *testing.T) {
		for _, name := range []string{"", "Glass", "labels", "glass "} {
			_, err := order.TeamFromString(name)

			require.Error(t, err, "name %q", name)
			assert.Contains(t, err.Error(), "team")
		}
	})
}

func TestTeams(t *testing.T) {
	assert.Equal(t, []order.Team{order.TeamGlass, order.TeamCaps, order.TeamBoxes, order.TeamPumps}, order.Teams())
}
