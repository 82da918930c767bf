package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// OrderHandler handles carts and checkout.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// ListCart returns the caller's cart. The optional ?email= must match the
// caller.
//
// @Summary      List cart items
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Caller email"
// @Success      200    {array}   domain.CartItem
// @Failure      403    {object}  map[string]string
// @Router       /carts [get]
func (h *OrderHandler) ListCart(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListCart(c.Request().Context(), id.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AddToCart godoc
//
// @Summary      Add an item to the cart
// @Tags         carts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cartItemRequest  true  "Cart line"
// @Success      201   {object}  insertResponse
// @Failure      400   {object}  map[string]string
// @Router       /carts [post]
func (h *OrderHandler) AddToCart(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req cartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	insertedID, err := h.service.AddToCart(c.Request().Context(), id, domain.CartItem{
		MenuID: req.MenuID,
		Name:   req.Name,
		Image:  req.Image,
		Price:  req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, insertResponse{InsertedID: insertedID})
}

// RemoveFromCart godoc
//
// @Summary      Remove a cart line
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart line id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /carts/{id} [delete]
func (h *OrderHandler) RemoveFromCart(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	n, err := h.service.RemoveFromCart(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: n})
}

// CreatePaymentIntent converts the price to cents and opens a card payment
// intent with the processor.
//
// @Summary      Create a payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentIntentRequest  true  "Amount"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /create-payment-intent [post]
func (h *OrderHandler) CreatePaymentIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	secret, err := h.service.CreatePaymentIntent(c.Request().Context(), req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

// RecordPayment stores a completed checkout and clears the paid cart lines.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentRequest  true  "Payment"
// @Success      201   {object}  ports.RecordPaymentResult
// @Failure      400   {object}  map[string]string
// @Router       /payments [post]
func (h *OrderHandler) RecordPayment(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.service.RecordPayment(c.Request().Context(), id, domain.Payment{
		Price:         req.Price,
		TransactionID: req.TransactionID,
		CartIDs:       req.CartIDs,
		MenuIDs:       req.MenuIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// ListMyPayments godoc
//
// @Summary      List own payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {array}   domain.Payment
// @Failure      403    {object}  map[string]string
// @Router       /payments/{email} [get]
func (h *OrderHandler) ListMyPayments(c echo.Context) error {
	payments, err := h.service.ListPaymentsByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// ListPayments godoc
//
// @Summary      List all payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Payment
// @Failure      403  {object}  map[string]string
// @Router       /payments [get]
func (h *OrderHandler) ListPayments(c echo.Context) error {
	payments, err := h.service.ListPayments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
