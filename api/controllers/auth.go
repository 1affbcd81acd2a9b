package controllers

import (
	"net/http"
	"strings"

	"github.com/bmimportados/backoffice-backend/api/middleware"
	"github.com/bmimportados/backoffice-backend/api/responses"
	"github.com/bmimportados/backoffice-backend/api/validators"
	"github.com/bmimportados/backoffice-backend/internal/auth"
	pkgAuth "github.com/bmimportados/backoffice-backend/pkg/auth"
	"github.com/bmimportados/backoffice-backend/pkg/config"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
)

// AuthLogin exchanges credentials for a JWT. The token is returned in the
// body and also set as an HttpOnly cookie for browser clients.
func AuthLogin(svc auth.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(jwtCfg, result.Token, int(jwtCfg.SessionTTL().Seconds())))
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the server-side session and expires the cookie. It is
// tolerant: a request without a usable token still clears the cookie.
func AuthLogout(svc auth.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			if token := bearerOrCookieToken(r, jwtCfg.CookieName); token != "" {
				if claims, err := pkgAuth.ParseSessionToken(jwtCfg, token); err == nil {
					sessionID = claims.ID
				}
			}
		}

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(jwtCfg, "", -1))
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

func sessionCookie(jwtCfg config.JWTConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     jwtCfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   jwtCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func bearerOrCookieToken(r *http.Request, cookieName string) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}
	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			return strings.TrimSpace(cookie.Value)
		}
	}
	return ""
}
