package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFilterFromString(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		f, err := queries.StatusFilterFromString("liveOrders")
		require.NoError(t, err)
		assert.Equal(t, queries.LiveOrders, f)

		f, err = queries.StatusFilterFromString("completedOrders")
		require.NoError(t, err)
		assert.Equal(t, queries.CompletedOrders, f)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "live", "LiveOrders", "pending"} {
			_, err := queries.StatusFilterFromString(name)
			require.Error(t, err, "name %q", name)
		}
	})
}

func TestNewFilterOrdersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q, err := queries.NewFilterOrdersQuery(queries.LiveOrders, order.TeamGlass)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, queries.LiveOrders, q.Filter())
		assert.Equal(t, order.TeamGlass, q.Team())
	})

	t.Run("should reject unknown filter", func(t *testing.T) {
		_, err := queries.NewFilterOrdersQuery(queries.UnknownFilter, order.TeamGlass)

		require.Error(t, err)
	})

	t.Run("should reject unknown team", func(t *testing.T) {
		_, err := queries.NewFilterOrdersQuery(queries.LiveOrders, order.Team("labels"))

		require.Error(t, err)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var q queries.FilterOrdersQuery

		require.ErrorIs(t, q.Validate(), queries.ErrFilterOrdersQueryIsNotConstructed)
	})
}

func TestNewGetAllOrdersQuery(t *testing.T) {
	q := queries.NewGetAllOrdersQuery()
	require.NoError(t, q.Validate())

	var zero queries.GetAllOrdersQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetAllOrdersQueryIsNotConstructed)
}
