package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/service"
	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// iOSRedirectScheme is the deep link the mobile client registered for
// receiving the issued token.
const iOSRedirectScheme = "tilapp://auth"

// OAuthHandler drives the browser-facing ends of the OAuth code flow.
type OAuthHandler struct {
	uc     usecase.OAuthUsecase
	logger *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(uc usecase.OAuthUsecase, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{uc: uc, logger: logger}
}

// beginLogin redirects the user agent to the provider's authorization page.
func (h *OAuthHandler) beginLogin(c echo.Context, provider entity.ProviderType, client service.ClientType) error {
	authURL, err := h.uc.BeginLogin(c.Request().Context(), provider, client)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleLogin starts the Google flow for a web client.
func (h *OAuthHandler) GoogleLogin(c echo.Context) error {
	return h.beginLogin(c, entity.ProviderTypeGoogle, service.ClientTypeWeb)
}

// GoogleLoginIOS starts the Google flow for the iOS client.
func (h *OAuthHandler) GoogleLoginIOS(c echo.Context) error {
	return h.beginLogin(c, entity.ProviderTypeGoogle, service.ClientTypeIOS)
}

// GitHubLogin starts the GitHub flow for a web client.
func (h *OAuthHandler) GitHubLogin(c echo.Context) error {
	return h.beginLogin(c, entity.ProviderTypeGitHub, service.ClientTypeWeb)
}

// GitHubLoginIOS starts the GitHub flow for the iOS client.
func (h *OAuthHandler) GitHubLoginIOS(c echo.Context) error {
	return h.beginLogin(c, entity.ProviderTypeGitHub, service.ClientTypeIOS)
}

// completeLogin finishes the code flow and sends the user agent to the
// client-type specific destination. The iOS deep link carries the raw token.
func (h *OAuthHandler) completeLogin(c echo.Context, provider entity.ProviderType) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return domainerrors.ErrOAuthFailed.WrapMessage("provider reported: " + errParam)
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return domainerrors.ErrBadRequest.WrapMessage("missing code or state parameter")
	}

	out, err := h.uc.CompleteLogin(c.Request().Context(), provider, code, state)
	if err != nil {
		return errors.WithStack(err)
	}

	if out.Client == service.ClientTypeIOS {
		return c.Redirect(http.StatusSeeOther, iOSRedirectScheme+"?token="+url.QueryEscape(out.Token.Value))
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// GoogleCallback handles the Google authorization-code callback.
func (h *OAuthHandler) GoogleCallback(c echo.Context) error {
	return h.completeLogin(c, entity.ProviderTypeGoogle)
}

// GitHubCallback handles the GitHub authorization-code callback.
func (h *OAuthHandler) GitHubCallback(c echo.Context) error {
	return h.completeLogin(c, entity.ProviderTypeGitHub)
}
