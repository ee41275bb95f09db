package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrFilterOrdersQueryIsNotConstructed = errors.New(
		"FilterOrdersQuery must be created via NewFilterOrdersQuery constructor",
	)
)

// StatusFilter selects which slice of the order book a filtered listing
// covers. It is an explicit enum: unknown filter strings are rejected at
// parse time rather than silently matching nothing.
type StatusFilter int

const (
	// UnknownFilter is the zero value and is never valid.
	UnknownFilter StatusFilter = iota

	// LiveOrders selects orders still in Pending status.
	LiveOrders

	// CompletedOrders selects orders that reached Completed status.
	CompletedOrders
)

// StatusFilterFromString parses the wire names "liveOrders" and
// "completedOrders".
func StatusFilterFromString(s string) (StatusFilter, error) {
	switch s {
	case "liveOrders":
		return LiveOrders, nil
	case "completedOrders":
		return CompletedOrders, nil
	}
	return UnknownFilter, errs.NewValueIsInvalidErrorWithCause("orderType",
		fmt.Errorf("%q is not a valid order filter", s))
}

// Validate checks the filter is one of the known values.
func (f StatusFilter) Validate() error {
	if f == LiveOrders || f == CompletedOrders {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("orderType",
		fmt.Errorf("%d is not a valid order filter", f))
}

// status returns the order status the filter selects.
func (f StatusFilter) status() order.Status {
	if f == CompletedOrders {
		return order.Completed
	}
	return order.Pending
}

// FilterOrdersQuery lists the orders a single team cares about: orders in
// the selected status slice that carry at least one line item for that team.
//
// Example:
//
//	query, err := NewFilterOrdersQuery(LiveOrders, order.TeamGlass)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewFilterOrdersQueryHandler(db).Handle(ctx, query)
type FilterOrdersQuery struct {
	filter StatusFilter
	team   order.Team

	guard guard.ConstructorGuard
}

// NewFilterOrdersQuery creates a filtered listing query.
// Both the status filter and the team must be valid.
func NewFilterOrdersQuery(filter StatusFilter, team order.Team) (FilterOrdersQuery, error) {
	if err := filter.Validate(); err != nil {
		return FilterOrdersQuery{}, err
	}
	if err := team.Validate(); err != nil {
		return FilterOrdersQuery{}, err
	}

	return FilterOrdersQuery{
		filter: filter,
		team:   team,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFilterOrdersQueryIsNotConstructed if validation fails.
func (q FilterOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFilterOrdersQueryIsNotConstructed)
}

// Filter returns the selected status slice.
func (q FilterOrdersQuery) Filter() StatusFilter {
	return q.filter
}

// Team returns the team whose items the projection is reduced to.
func (q FilterOrdersQuery) Team() order.Team {
	return q.team
}

// FilteredOrderResponse is the reduced projection returned by filtered
// listings: order header fields plus only the requesting team's items.
type FilteredOrderResponse struct {
	OrderNumber    string
	DispatcherName string
	CustomerName   string
	Status         string
	CreatedAt      time.Time
	Team           string
	Items          []LineItemResponse
}
