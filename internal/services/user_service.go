package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/auth"
	"github.com/eventtracker/server/internal/models"
	repo "github.com/eventtracker/server/internal/repository"
	"github.com/eventtracker/server/internal/validate"
)

type UserService struct {
	users repo.Users
	audit repo.AuditLogs
}

func NewUserService(users repo.Users, audit repo.AuditLogs) *UserService {
	return &UserService{users: users, audit: audit}
}

// Register creates an active user. Email is normalized before the uniqueness
// check and before storage; names are stored trimmed.
func (s *UserService) Register(ctx context.Context, email, firstName, lastName, password string) (models.User, error) {
	email = models.NormalizeEmail(email)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	var errs validate.Errs
	errs.Add(validate.Required("email", email))
	if email != "" {
		errs.Add(validate.Email("email", email))
	}
	errs.Add(validate.Required("first_name", firstName))
	errs.Add(validate.Required("last_name", lastName))
	errs.Add(validate.MinLen("password", password, 8))
	if err := errs.Err(); err != nil {
		return models.User{}, err
	}

	if exists, err := s.users.ExistsEmail(ctx, email); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, apperr.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	u, err := s.users.Create(ctx, models.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		// the unique index catches registrations racing past ExistsEmail;
		// the repo already translates that to ErrDuplicateEmail
		return models.User{}, err
	}

	s.writeAudit(ctx, "user", u.ID, "registered", nil)
	return u, nil
}

// Authenticate verifies email+password. Failures stay low-detail: a missing
// account and a wrong password both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.users.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !u.IsActive {
		return models.User{}, apperr.ErrAccountDisabled
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) writeAudit(ctx context.Context, entity, id, action string, details map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, models.AuditLog{EntityType: entity, EntityID: &id, Action: action, Details: details}); err != nil {
		slog.Warn("audit write failed", "entity", entity, "action", action, "err", err)
	}
}
