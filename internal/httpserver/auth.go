package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/service"
	"github.com/Skotchmaster/inventory/internal/transport"
)

const (
	msgLoginOK            = "Login realizado com sucesso!"
	msgInvalidCredentials = "Credenciais inválidas"
	msgUserCreated        = "Usuário criado com sucesso"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Login(ctx, *req.Username, *req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials)
		}
		l.Error("login_error", "status", 500, "reason", "cannot check credentials", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot check credentials")
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgLoginOK})
}

// CreateUser accepts username and password as query parameters, a JSON body,
// or both; body fields win.
func (h *AuthHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_user")

	var req transport.CreateUserRequest
	q := c.QueryParams()
	if q.Has("username") {
		v := q.Get("username")
		req.Username = &v
	}
	if q.Has("password") {
		v := q.Get("password")
		req.Password = &v
	}

	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Svc.CreateUser(ctx, *req.Username, *req.Password)
	if err != nil {
		l.Error("create_user_error", "status", 500, "reason", "cannot create user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.UserResponse{Message: msgUserCreated, User: user})
}
