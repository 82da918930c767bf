package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// ReservationHandler handles table bookings.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create books a table for the caller and announces it on the channel.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Booking details"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /reservation [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	r, err := h.service.CreateReservation(c.Request().Context(), id, ports.CreateReservationInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Guests: req.Guests,
		Date:   req.Date,
		Time:   req.Time,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// List returns every booking.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      403  {object}  map[string]string
// @Router       /reservation [get]
func (h *ReservationHandler) List(c echo.Context) error {
	rs, err := h.service.ListReservations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rs)
}

// ListMine returns the caller's bookings.
//
// @Summary      List own reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {array}   domain.Reservation
// @Failure      403    {object}  map[string]string
// @Router       /reservation/{email} [get]
func (h *ReservationHandler) ListMine(c echo.Context) error {
	rs, err := h.service.ListReservationsByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rs)
}

// UpdateStatus changes a booking's status. Only an effective change is
// announced on the channel.
//
// @Summary      Update reservation status
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Reservation id"
// @Param        body  body      updateReservationRequest  true  "New status"
// @Success      200   {object}  ports.UpdateResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /reservation/{id} [patch]
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req updateReservationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.service.UpdateReservationStatus(c.Request().Context(), c.Param("id"), domain.ReservationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete cancels a booking owned by the caller, or any booking for an admin.
//
// @Summary      Delete a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reservation/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	n, err := h.service.DeleteReservation(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: n})
}
