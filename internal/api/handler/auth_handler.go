package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/ports"
)

type AuthHandler struct {
	issuer ports.TokenIssuer
	users  ports.UserService
}

func NewAuthHandler(issuer ports.TokenIssuer, users ports.UserService) *AuthHandler {
	return &AuthHandler{issuer: issuer, users: users}
}

// IssueToken signs an identity token for the submitted email. Any field other
// than email is ignored.
//
// @Summary      Issue an identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Email to sign"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Router       /jwt [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, _, err := h.issuer.Issue(req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// AdminStatus reports whether the caller holds the admin role.
//
// @Summary      Check admin role
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  adminStatusResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /user/admin/{email} [get]
func (h *AuthHandler) AdminStatus(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	admin, err := h.users.IsAdmin(c.Request().Context(), id.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatusResponse{Admin: admin})
}
