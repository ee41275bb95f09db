package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// RealtimeStats exposes the realtime channel's connection count to the
// health endpoint.
type RealtimeStats interface {
	ClientCount() int
}

// Server handles the REST surface of the order tracker. It coordinates
// between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler    commands.CreateOrderCommandHandler
	updateProgressHandler commands.UpdateProgressCommandHandler

	getAllOrdersHandler queries.GetAllOrdersQueryHandler
	filterOrdersHandler queries.FilterOrdersQueryHandler

	realtime RealtimeStats
	dbPing   func(ctx context.Context) error
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateProgressHandler commands.UpdateProgressCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	filterOrdersHandler queries.FilterOrdersQueryHandler,
	realtime RealtimeStats,
	dbPing func(ctx context.Context) error,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		updateProgressHandler: updateProgressHandler,
		getAllOrdersHandler:   getAllOrdersHandler,
		filterOrdersHandler:   filterOrdersHandler,
		realtime:              realtime,
		dbPing:                dbPing,
		metrics:               m,
		logger:                logger,
	}
}

// RegisterRoutes attaches the REST endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/:orderType", s.FilterOrders)
	e.PATCH("/orders/update-progress", s.UpdateProgress)
}

// CreateOrder handles POST /orders - places a new production order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	details := make(map[order.Team][]commands.OrderItem, len(request.OrderDetails))
	for team, items := range request.OrderDetails {
		orderItems := make([]commands.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, commands.OrderItem{
				Name:     item.Name,
				Quantity: item.Quantity,
			})
		}
		details[order.Team(team)] = orderItems
	}

	cmd, err := commands.NewCreateOrderCommand(
		request.OrderNumber,
		request.DispatcherName,
		request.CustomerName,
		details,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.commandError(ctx, "create order", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersCreatedTotal.Inc()
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(aggregate))
}

// GetOrders handles GET /orders - retrieves every order, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("get orders", "error", err)

		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]Order, 0, len(orders))
	for _, projection := range orders {
		response = append(response, orderFromProjection(projection))
	}

	return ctx.JSON(http.StatusOK, response)
}

// FilterOrders handles GET /orders/:orderType?team= - retrieves live or
// completed orders reduced to one team's items.
func (s *Server) FilterOrders(ctx echo.Context) error {
	filter, err := queries.StatusFilterFromString(ctx.Param("orderType"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	team, err := order.TeamFromString(ctx.QueryParam("team"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewFilterOrdersQuery(filter, team)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.filterOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("filter orders", "orderType", ctx.Param("orderType"), "team", team, "error", err)

		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]FilteredOrder, 0, len(orders))
	for _, projection := range orders {
		response = append(response, filteredOrderFromProjection(projection))
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateProgress handles PATCH /orders/update-progress - applies one
// team's completion batch to an order.
func (s *Server) UpdateProgress(ctx echo.Context) error {
	var request UpdateProgressRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]commands.ProgressItem, 0, len(request.Updates))
	for _, item := range request.Updates {
		items = append(items, commands.ProgressItem{
			ItemID:       item.ItemID,
			QtyCompleted: item.QtyCompleted,
		})
	}

	cmd, err := commands.NewUpdateProgressCommand(
		request.OrderNumber,
		order.Team(request.TeamType),
		request.UpdatedBy,
		items,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.updateProgressHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ProgressBatchesTotal.WithLabelValues("rejected").Inc()
		}

		return s.commandError(ctx, "update progress", err)
	}

	if s.metrics != nil {
		s.metrics.ProgressBatchesTotal.WithLabelValues("applied").Inc()
		if result.Order.Status().IsFinal() && len(result.SkippedItemIDs) < len(request.Updates) {
			s.metrics.OrdersCompletedTotal.Inc()
		}
	}

	response := UpdateProgressResponse{
		Order:          orderFromDomain(result.Order),
		SkippedItemIDs: result.SkippedItemIDs,
	}
	if response.SkippedItemIDs == nil {
		response.SkippedItemIDs = []string{}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness plus database reachability and
// the realtime client count.
func (s *Server) Health(ctx echo.Context) error {
	clients := 0
	if s.realtime != nil {
		clients = s.realtime.ClientCount()
	}

	health := "healthy"
	database := "up"
	status := http.StatusOK
	if s.dbPing != nil {
		if err := s.dbPing(ctx.Request().Context()); err != nil {
			s.logger.Error("health db ping", "error", err)
			health = "degraded"
			database = "down"
			status = http.StatusServiceUnavailable
		}
	}

	return ctx.JSON(status, map[string]any{
		"status":     health,
		"database":   database,
		"ws_clients": clients,
	})
}

// commandError translates use case failures into HTTP status codes.
func (s *Server) commandError(ctx echo.Context, operation string, err error) error {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(operation, "error", err)

		return internalError(ctx, "Failed to "+operation)
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
