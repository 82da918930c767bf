package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/api/middleware"
	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// maxPageLimit bounds ?limit= on paged listings.
const maxPageLimit = 500

// requireIdentity returns the identity bound by the Auth middleware. Routes
// that call it are always mounted behind Auth; an empty identity here means
// the route was wired without it.
func requireIdentity(c echo.Context) (domain.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id.Anonymous() {
		return domain.Identity{}, domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}
	return id, nil
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("invalid payload")
	}
	return c.Validate(req)
}

// pageParams reads the optional ?page= and ?limit= query parameters.
func pageParams(c echo.Context) (domain.Page, error) {
	var p domain.Page
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, domain.Invalid("page must be a positive integer")
		}
		p.Page = n
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageLimit {
			return p, domain.Invalid("limit must be between 1 and 500")
		}
		p.Limit = n
	}
	return p, nil
}
