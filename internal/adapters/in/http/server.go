package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	// BoardReader is satisfied by queries.GetOrderBoardQueryHandler.
	BoardReader interface {
		Handle(ctx context.Context, query queries.GetOrderBoardQuery) (queries.GetOrderBoardQueryResponse, error)
	}

	// OrderReader is satisfied by queries.GetOrderQueryHandler.
	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	// ArchiveReader is satisfied by queries.GetArchivedOrderQueryHandler.
	ArchiveReader interface {
		Handle(ctx context.Context, query queries.GetArchivedOrderQuery) (queries.GetArchivedOrderQueryResponse, error)
	}
)

// Server exposes a read-only view of the order board for operators.
// Orders are placed and advanced in process; nothing here changes state.
type Server struct {
	board   BoardReader
	orders  OrderReader
	archive ArchiveReader
	logger  *slog.Logger
}

// NewServer creates the operational server. archive may be nil when the
// order archive is disabled; the archive route is then not registered.
func NewServer(board BoardReader, orders OrderReader, archive ArchiveReader, logger *slog.Logger) *Server {
	return &Server{
		board:   board,
		orders:  orders,
		archive: archive,
		logger:  logger.With("component", "http_server"),
	}
}

// Register adds the routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	debug := e.Group("/debug")
	debug.GET("/orders", s.GetOrders)
	debug.GET("/orders/:id", s.GetOrder)
	if s.archive != nil {
		debug.GET("/archive/:id", s.GetArchivedOrder)
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetOrders handles GET /debug/orders - the current board.
func (s *Server) GetOrders(ctx echo.Context) error {
	board, err := s.board.Handle(ctx.Request().Context(), queries.NewGetOrderBoardQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, newBoardResponse(board))
}

// GetOrder handles GET /debug/orders/:id - one order with its items.
func (s *Server) GetOrder(ctx echo.Context) error {
	var orderID int64
	if err := echo.PathParamsBinder(ctx).MustInt64("id", &orderID).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid order id"})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid order id: " + err.Error()})
	}

	o, err := s.orders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(o))
}

// GetArchivedOrder handles GET /debug/archive/:id - the order as last archived.
func (s *Server) GetArchivedOrder(ctx echo.Context) error {
	var orderID int64
	if err := echo.PathParamsBinder(ctx).MustInt64("id", &orderID).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid order id"})
	}

	query, err := queries.NewGetArchivedOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid order id: " + err.Error()})
	}

	o, err := s.archive.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve archived order")
	}

	return ctx.JSON(http.StatusOK, newArchivedOrderResponse(o))
}

func (s *Server) fail(ctx echo.Context, err error, message string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
	}

	s.logger.ErrorContext(ctx.Request().Context(), message, "error", err)
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
