package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/api/middleware"
	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// ChannelServer runs one realtime session bound to a verified identity.
type ChannelServer interface {
	Serve(w http.ResponseWriter, r *http.Request, identity domain.Identity) error
}

// ChannelHandler upgrades GET /ws. The token may come from the Authorization
// header or, for browser clients that cannot set headers on an upgrade, from
// ?token=. A request without any token opens an anonymous session that only
// receives global events; a token that fails verification is rejected with
// 401 before the upgrade.
type ChannelHandler struct {
	authn  ports.Authenticator
	server ChannelServer
	log    zerolog.Logger
}

func NewChannelHandler(authn ports.Authenticator, server ChannelServer, log zerolog.Logger) *ChannelHandler {
	return &ChannelHandler{authn: authn, server: server, log: log}
}

// Connect godoc
//
// @Summary      Open the realtime channel
// @Tags         realtime
// @Param        token  query     string  false  "Identity token"
// @Success      101
// @Failure      401    {object}  map[string]string
// @Router       /ws [get]
func (h *ChannelHandler) Connect(c echo.Context) error {
	id, err := h.identity(c)
	if err != nil {
		middleware.RecordAuthFailure(h.log, c, err)
		return err
	}

	if err := h.server.Serve(c.Response(), c.Request(), id); err != nil {
		h.log.Debug().Err(err).Msg("channel upgrade failed")
	}
	return nil
}

func (h *ChannelHandler) identity(c echo.Context) (domain.Identity, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.TrimSpace(header) != "" {
		return h.authn.Authenticate(header)
	}
	if token := c.QueryParam("token"); token != "" {
		return h.authn.Verify(token)
	}
	return domain.Identity{}, nil
}
