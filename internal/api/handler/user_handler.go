package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register stores the account if it does not exist yet. The role is never
// taken from the request.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Account details"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.users.RegisterUser(c.Request().Context(), ports.RegisterUserInput{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return err
	}
	if res.AlreadyExists {
		return c.JSON(http.StatusOK, registerResponse{Message: "user already exists"})
	}
	return c.JSON(http.StatusOK, registerResponse{InsertedID: &res.InsertedID})
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Promote grants the admin role.
//
// @Summary      Promote a user to admin
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  ports.UpdateResult
// @Failure      403  {object}  map[string]string
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) Promote(c echo.Context) error {
	res, err := h.users.PromoteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete removes an account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	n, err := h.users.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: n})
}
