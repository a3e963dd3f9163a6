package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirsoft21/bementor/internal/auth"
	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

// AuthService implements registration, login and the current-user lookup.
// Passwords are bcrypt-hashed in both store modes; the transient store
// never sees plaintext either.
type AuthService struct {
	users    repository.UserRepository
	teachers repository.TeacherRepository
	tokens   auth.Authenticator
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, teachers repository.TeacherRepository, tokens auth.Authenticator, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, teachers: teachers, tokens: tokens, logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Phone    string
	Location string
}

// Register creates the user, and for teachers an empty directory profile,
// then issues a token. The store's duplicate guard (unique index or the
// memory table's lock) is the source of truth for email uniqueness.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Phone:        in.Phone,
		Location:     in.Location,
		Avatar:       models.DefaultAvatar,
		PremiumPlan:  models.PlanFree,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	if u.Role == models.RoleTeacher {
		t := &models.Teacher{
			User: models.TeacherUser{
				ID:       u.ID,
				Name:     u.Name,
				Email:    u.Email,
				Avatar:   u.Avatar,
				Location: u.Location,
			},
			Subjects: []string{},
			IsActive: true,
		}
		if err := s.teachers.Create(ctx, t); err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and, when an expected role is supplied,
// rejects a role mismatch without issuing a token.
func (s *AuthService) Login(ctx context.Context, email, password string, expectedRole models.Role) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !u.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if expectedRole != "" && u.Role != expectedRole {
		return nil, "", ErrRoleMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	u.LastLogin = &now
	if err := s.users.Update(ctx, u); err != nil {
		// login already succeeded; a failed last-login write is not fatal
		s.logger.Warn("failed to update last login", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// CurrentUser does a live lookup; the identity may have vanished since the
// token was minted.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ChangePassword verifies the old password before re-hashing. An unchanged
// password returns early with nothing to write.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if newPassword == oldPassword {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(ctx, u)
}
