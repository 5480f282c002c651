package service

import (
	"context"
	"fmt"
	"time"

	"clinic-backend/internal/model"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// DeviceInfo carries request metadata resolved by the transport layer.
type DeviceInfo struct {
	IPAddress string
	UserAgent string
}

type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FullName     string   `json:"full_name"`
	Roles        []string `json:"roles"`
}

// SessionRevoker invalidates every active session of a user. The user
// service calls it synchronously when a password changes, so a credential
// change logs out all devices.
type SessionRevoker interface {
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// AuthService orchestrates credential verification, token issuance and
// session bookkeeping.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest, device DeviceInfo) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	users    repository.UserRepository
	sessions repository.RefreshTokenRepository
	issuer   *token.Issuer
}

func NewAuthService(users repository.UserRepository, sessions repository.RefreshTokenRepository, issuer *token.Issuer) AuthService {
	return &authService{users: users, sessions: sessions, issuer: issuer}
}

// Login verifies credentials and opens a new session. Every failure path
// returns ErrInvalidCredentials so an unknown username, a wrong password
// and a disabled account are indistinguishable from outside.
func (s *authService) Login(ctx context.Context, req LoginRequest, device DeviceInfo) (*AuthResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// One session row per login; concurrent sessions per user are allowed.
	session := &model.RefreshToken{
		Token:      refreshToken,
		UserID:     user.ID,
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
		IPAddress:  device.IPAddress,
		UserAgent:  device.UserAgent,
		ExpiryDate: time.Now().Add(s.issuer.RefreshTTL()),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return s.buildResponse(user, accessToken, refreshToken), nil
}

// Refresh rotates a session: the row keeps its identity and device
// metadata but its token value and expiry are replaced, invalidating the
// presented token immediately. Absent, expired and tampered tokens all
// fail with the same ErrInvalidToken; expired and tampered ones also lose
// their row so the holder must re-authenticate.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	session, err := s.sessions.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	now := time.Now()
	// An expiry of exactly now counts as expired.
	if !session.ExpiryDate.After(now) {
		_ = s.sessions.Delete(ctx, session)
		return nil, ErrInvalidToken
	}
	if _, err := s.issuer.Verify(refreshToken); err != nil {
		_ = s.sessions.Delete(ctx, session)
		return nil, ErrInvalidToken
	}

	user := &session.User
	newAccessToken, newRefreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	session.Token = newRefreshToken
	session.ExpiryDate = now.Add(s.issuer.RefreshTTL())
	session.LastUsedAt = &now
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return s.buildResponse(user, newAccessToken, newRefreshToken), nil
}

// Logout removes the matching session row. An unknown token is not an
// error: the session is gone either way.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.DeleteByToken(ctx, refreshToken)
}

// RevokeAll deletes every session of the user. Idempotent.
func (s *authService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *authService) issueTokens(user *model.User) (access string, refresh string, err error) {
	roles := user.RoleNames()
	access, err = s.issuer.IssueAccessToken(user.ID, user.Username, roles)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err = s.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *authService) buildResponse(user *model.User, accessToken, refreshToken string) *AuthResponse {
	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		UserID:       user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Roles:        user.RoleNames(),
	}
}
