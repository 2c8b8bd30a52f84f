package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/tdnguyen2104/virtual-queue/internal/errors"
	"github.com/tdnguyen2104/virtual-queue/internal/service"
	"github.com/tdnguyen2104/virtual-queue/pkg/logger"
)

type Handler struct {
	bookingService service.BookingService
	l              logger.Logger
}

func NewHandler(bookingService service.BookingService, l logger.Logger) *Handler {
	return &Handler{
		bookingService: bookingService,
		l:              l,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	v1.POST("/bookings", h.BookSlot)
	v1.GET("/bookings/:token", h.GetBooking)
	v1.GET("/services", h.ListServices)
	v1.POST("/services/:id/serve", h.MarkServed)
	v1.GET("/status", h.QueueStatus)
	v1.GET("/history", h.History)
	v1.GET("/history/graph", h.HistoryGraph)
	v1.POST("/admin/reset", h.Reset)
}

func (h *Handler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "virtual-queue",
	})
}

func (h *Handler) BookSlot(c echo.Context) error {
	var req service.BookSlotInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("Invalid request body"))
	}

	out, err := h.bookingService.BookSlot(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrServiceNotFound):
			return c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, apperrors.ErrEmptyUserName):
			return c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, apperrors.ErrCapacityExceeded):
			return c.JSON(http.StatusConflict, errorResponse(err.Error()))
		default:
			h.l.Errorf(c.Request().Context(), "delivery.http.Handler.BookSlot: %v", err)
			return c.JSON(http.StatusInternalServerError, errorResponse("Failed to book slot"))
		}
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) GetBooking(c echo.Context) error {
	token := c.Param("token")

	b, err := h.bookingService.GetBooking(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		}
		h.l.Errorf(c.Request().Context(), "delivery.http.Handler.GetBooking: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse("Failed to get booking"))
	}

	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"services": h.bookingService.ListServices(c.Request().Context()),
	})
}

func (h *Handler) MarkServed(c echo.Context) error {
	serviceID := c.Param("id")

	out, err := h.bookingService.MarkServed(c.Request().Context(), serviceID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrServiceNotFound):
			return c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, apperrors.ErrQueueEmpty):
			return c.JSON(http.StatusConflict, errorResponse(err.Error()))
		default:
			h.l.Errorf(c.Request().Context(), "delivery.http.Handler.MarkServed: %v", err)
			return c.JSON(http.StatusInternalServerError, errorResponse("Failed to mark served"))
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *Handler) QueueStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": h.bookingService.QueueStatus(c.Request().Context()),
	})
}

func (h *Handler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"history": h.bookingService.History(c.Request().Context()),
	})
}

func (h *Handler) HistoryGraph(c echo.Context) error {
	return c.String(http.StatusOK, h.bookingService.HistoryGraph(c.Request().Context()))
}

func (h *Handler) Reset(c echo.Context) error {
	if err := h.bookingService.Reset(c.Request().Context()); err != nil {
		h.l.Errorf(c.Request().Context(), "delivery.http.Handler.Reset: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse("Failed to reset"))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Queue manager reset.",
	})
}

func errorResponse(message string) map[string]any {
	return map[string]any{
		"error": message,
	}
}
