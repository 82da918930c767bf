package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// CatalogHandler serves the menu, reviews and the contact form.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListMenu godoc
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /menu [get]
func (h *CatalogHandler) ListMenu(c echo.Context) error {
	items, err := h.service.ListMenu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetMenuItem godoc
//
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Param        id   path      string  true  "Menu item id"
// @Success      200  {object}  domain.MenuItem
// @Failure      404  {object}  map[string]string
// @Router       /menu/{id} [get]
func (h *CatalogHandler) GetMenuItem(c echo.Context) error {
	item, err := h.service.GetMenuItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// CreateMenuItem godoc
//
// @Summary      Add a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      201   {object}  insertResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /menu [post]
func (h *CatalogHandler) CreateMenuItem(c echo.Context) error {
	var req menuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id, err := h.service.CreateMenuItem(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, insertResponse{InsertedID: id})
}

// UpdateMenuItem godoc
//
// @Summary      Replace a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Menu item id"
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      200   {object}  ports.UpdateResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /menu/{id} [patch]
func (h *CatalogHandler) UpdateMenuItem(c echo.Context) error {
	var req menuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.service.UpdateMenuItem(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteMenuItem godoc
//
// @Summary      Delete a menu item
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Menu item id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  map[string]string
// @Router       /menu/{id} [delete]
func (h *CatalogHandler) DeleteMenuItem(c echo.Context) error {
	n, err := h.service.DeleteMenuItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: n})
}

// ListReviews godoc
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {array}  domain.Review
// @Router       /reviews [get]
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	reviews, err := h.service.ListReviews(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListMyReviews godoc
//
// @Summary      List own reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {array}   domain.Review
// @Failure      403    {object}  map[string]string
// @Router       /reviews/{email} [get]
func (h *CatalogHandler) ListMyReviews(c echo.Context) error {
	reviews, err := h.service.ListReviewsByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// CreateReview godoc
//
// @Summary      Post a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  insertResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /reviews [post]
func (h *CatalogHandler) CreateReview(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	insertedID, err := h.service.CreateReview(c.Request().Context(), id, domain.Review{
		Name:    req.Name,
		Details: req.Details,
		Rating:  req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, insertResponse{InsertedID: insertedID})
}

// SubmitContact godoc
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      201   {object}  insertResponse
// @Failure      400   {object}  map[string]string
// @Router       /contact [post]
func (h *CatalogHandler) SubmitContact(c echo.Context) error {
	var req contactRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id, err := h.service.SubmitContact(c.Request().Context(), domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, insertResponse{InsertedID: id})
}

func (r menuItemRequest) toDomain() domain.MenuItem {
	return domain.MenuItem{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Recipe:   r.Recipe,
		Image:    r.Image,
	}
}
