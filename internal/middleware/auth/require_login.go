package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/models"
	"github.com/Skotchmaster/post_shop/internal/tokens"
)

const (
	MsgLoginRequired = "Please log in first."

	tokenKey = "token"
	userKey  = "user"
)

type UserLoader interface {
	Authenticate(ctx context.Context, userID uint) (*models.User, error)
}

// RequireLogin verifies the bearer token and then loads its user.
func RequireLogin(secret []byte, users UserLoader) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{Bearer(secret), LoadUser(users)}
}

// Bearer checks the Authorization header and keeps the parsed token under "token".
func Bearer(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:    tokenKey,
		SigningMethod: "HS256",
		TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ",
		KeyFunc:       tokens.KeyFunc(secret),
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return &tokens.AccessClaims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_failed", "status", 401, "reason", err.Error())
			return apperr.Auth(MsgLoginRequired, err)
		},
	})
}

// LoadUser resolves the token's user and stores it under "user".
func LoadUser(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			claims, err := claimsFrom(c)
			if err != nil {
				return apperr.Auth(MsgLoginRequired, err)
			}

			user, err := users.Authenticate(ctx, claims.UserID)
			if err != nil {
				if apperr.IsKind(err, apperr.KindAuth) {
					logging.FromContext(ctx).Warn("auth_failed", "status", 401, "user_id", claims.UserID, "reason", "unknown user")
					return apperr.Auth(MsgLoginRequired, err)
				}
				return err
			}

			c.Set(userKey, user)
			req := c.Request().WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", user.UserID)))
			c.SetRequest(req)
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) (*tokens.AccessClaims, error) {
	tkn, ok := c.Get(tokenKey).(*jwt.Token)
	if !ok || tkn == nil {
		return nil, tokens.ErrInvalidToken
	}
	claims, ok := tkn.Claims.(*tokens.AccessClaims)
	if !ok || claims.UserID == 0 {
		return nil, errors.Join(tokens.ErrInvalidToken, errors.New("token has no user"))
	}
	return claims, nil
}

// CurrentUser returns the user loaded by LoadUser, or nil outside an authenticated route.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
