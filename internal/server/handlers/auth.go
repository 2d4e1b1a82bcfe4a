package handlers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hoxhox/tvsource/internal/server/dto"
)

// tokenLifetime is how long an issued admin token stays valid.
const tokenLifetime = 24 * time.Hour

// Login checks the admin credential and issues a signed token.
func (h *Handlers) Login(ctx context.Context, req *dto.LoginRequest) (*dto.Envelope, error) {
	if !h.Cfg.CheckAdminPassword(req.Username, req.Password) {
		return nil, dto.Unauthorized("invalid username or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Username,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Cfg.JWTSecret))
	if err != nil {
		return nil, dto.Internal("failed to sign token", err)
	}

	return dto.Message("login successful", dto.LoginResponse{Token: signed, Username: req.Username}), nil
}
