// Package auth exchanges credentials with the marketplace backend and turns
// a successful login into a gateway session.
package auth

import (
	"context"
	"net/url"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

type upstreamClient interface {
	PostForm(ctx context.Context, endpoint string, form url.Values, out any) error
	PutJSON(ctx context.Context, endpoint string, payload any, out any) error
}

type sessionCreator interface {
	Create(ctx context.Context, profile types.UserProfile) (string, *session.Session, error)
	UpdateProfile(ctx context.Context, sess *session.Session, profile types.UserProfile) error
	Destroy(ctx context.Context, sess *session.Session) error
}

// Service handles login, registration, logout, and profile updates.
type Service struct {
	upstream upstreamClient
	sessions sessionCreator
	logger   *logger.Logger
}

// NewService wires the auth service.
func NewService(client upstreamClient, sessions sessionCreator, logg *logger.Logger) *Service {
	return &Service{upstream: client, sessions: sessions, logger: logg}
}

// LoginInput carries validated login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the minted session plus the landing path for the role.
type LoginResult struct {
	Token       string
	Session     *session.Session
	LandingPath string
}

// Login verifies credentials against the backend and, on success, creates a
// gateway session from the returned profile.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	form := url.Values{}
	form.Set("tag", "login")
	form.Set("email", input.Email)
	form.Set("password", input.Password)

	var profile types.UserProfile
	if err := s.upstream.PostForm(ctx, upstream.EndpointLogin, form, &profile); err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeUpstream {
			// Backend rejection of credentials surfaces as 401 with the
			// backend's message, not as a gateway fault.
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, pkgerrors.As(err).Message())
		}
		return nil, err
	}

	token, sess, err := s.sessions.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info(ctx, "user logged in")
	}

	return &LoginResult{
		Token:       token,
		Session:     sess,
		LandingPath: profile.Role.LandingPath(),
	}, nil
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// Register creates an account on the backend. No session is minted; the
// client signs in afterwards.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown role").WithDetails(map[string]string{"role": input.Role})
	}

	form := url.Values{}
	form.Set("tag", "register")
	form.Set("name", input.Name)
	form.Set("email", input.Email)
	form.Set("password", input.Password)
	form.Set("role", string(role))

	return s.upstream.PostForm(ctx, upstream.EndpointRegister, form, nil)
}

// Logout destroys the gateway session. The backend has no logout endpoint.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	return s.sessions.Destroy(ctx, sess)
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfile pushes the new name/email to the backend, then refreshes the
// stored session profile so the change is visible immediately.
func (s *Service) UpdateProfile(ctx context.Context, sess *session.Session, input UpdateProfileInput) error {
	payload := map[string]any{
		"userid": sess.Profile.UserID,
		"name":   input.Name,
		"email":  input.Email,
	}
	if err := s.upstream.PutJSON(ctx, upstream.EndpointProfile, payload, nil); err != nil {
		return err
	}

	updated := sess.Profile
	updated.Name = input.Name
	updated.Email = input.Email
	return s.sessions.UpdateProfile(ctx, sess, updated)
}

// ChangePasswordInput carries the new password.
type ChangePasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword pushes a password change to the backend. Hashing happens
// upstream; the gateway never stores credentials.
func (s *Service) ChangePassword(ctx context.Context, sess *session.Session, input ChangePasswordInput) error {
	payload := map[string]any{
		"userid":   sess.Profile.UserID,
		"password": input.NewPassword,
	}
	return s.upstream.PutJSON(ctx, upstream.EndpointProfile, payload, nil)
}
