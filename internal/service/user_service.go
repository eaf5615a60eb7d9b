package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
	"github.com/greenrise/greenrise-api/internal/redact"
	"github.com/greenrise/greenrise-api/internal/service/auth"
	"github.com/greenrise/greenrise-api/internal/store"
)

// UserService provides account management and login.
type UserService interface {
	// Register creates a user. When img is non-nil it is stored and its path
	// becomes the profile image; otherwise the default image is used.
	Register(ctx context.Context, params domain.UserParams, img *imagestore.Image) (*domain.User, error)

	// ListUsers returns every user.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// UpdateUser applies a partial update. A new password is re-hashed.
	UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// DeleteUser removes a user. Deleting a missing user is not an error.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Login checks credentials and issues a bearer token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	hasher    auth.PasswordHasher
	tokens    auth.JWTService
	images    imagestore.Store
	logger    *slog.Logger

	// defaultImage is the profile image of users registered without an upload.
	defaultImage string
}

// NewUserService creates a UserService.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	images imagestore.Store,
	defaultImage string,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	switch {
	case userStore == nil:
		return nil, errors.New("userStore cannot be nil")
	case db == nil:
		return nil, errors.New("db cannot be nil")
	case hasher == nil:
		return nil, errors.New("hasher cannot be nil")
	case tokens == nil:
		return nil, errors.New("tokens cannot be nil")
	case images == nil:
		return nil, errors.New("images cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:    userStore,
		db:           db,
		hasher:       hasher,
		tokens:       tokens,
		images:       images,
		logger:       logger.With("component", "user_service"),
		defaultImage: defaultImage,
	}, nil
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	params domain.UserParams,
	img *imagestore.Image,
) (*domain.User, error) {
	if img != nil {
		// Stored only after validation; a placeholder keeps NewUser from
		// substituting the default image.
		params.ProfileImage = img.Name
	} else if s.defaultImage != "" {
		params.ProfileImage = s.defaultImage
	}

	user, err := domain.NewUser(params)
	if err != nil {
		s.logger.Debug("rejected registration", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.hashPassword(user); err != nil {
		return nil, NewServiceError("user", "register", err)
	}

	if img != nil {
		path, err := s.images.Save(ctx, img)
		if err != nil {
			s.logger.Error("failed to store profile image",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", user.ID.String()))
			return nil, NewServiceError("user", "register", err)
		}
		user.ProfileImage = path
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if img != nil {
			if delErr := s.images.Delete(ctx, user.ProfileImage); delErr != nil {
				s.logger.Warn("failed to remove orphaned profile image",
					slog.String("error", redact.Error(delErr)),
					slog.String("path", user.ProfileImage))
			}
		}
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("registration with existing email")
			return nil, err
		}
		s.logger.Error("failed to save user", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "register", err)
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// ListUsers implements UserService.ListUsers.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "list", err)
	}
	return users, nil
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		s.logger.Error("failed to retrieve user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return nil, NewServiceError("user", "get", err)
	}
	return user, nil
}

// UpdateUser implements UserService.UpdateUser. The read, merge, and write run
// in one transaction so concurrent updates cannot interleave.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := user.Apply(patch); err != nil {
			return err
		}

		if user.Password != "" {
			if err := s.hashPassword(user); err != nil {
				return err
			}
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr),
			errors.Is(err, store.ErrUserNotFound),
			errors.Is(err, store.ErrEmailExists):
			s.logger.Debug("user update rejected",
				slog.String("error", err.Error()),
				slog.String("user_id", id.String()))
			return nil, err
		}
		s.logger.Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return nil, NewServiceError("user", "update", err)
	}

	s.logger.Info("user updated", slog.String("user_id", id.String()))
	return updated, nil
}

// DeleteUser implements UserService.DeleteUser. The user's plantings are
// left in place.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.userStore.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("delete of missing user", slog.String("user_id", id.String()))
			return nil
		}
		s.logger.Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return NewServiceError("user", "delete", err)
	}

	s.logger.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// Login implements UserService.Login.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown email")
			return nil, ErrEmailNotFound
		}
		s.logger.Error("failed to look up user for login", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "login", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Debug("login with wrong password", slog.String("user_id", user.ID.String()))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to verify password", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "login", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "login", err)
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID.String()))
	return &LoginResult{Token: token, User: user}, nil
}

// hashPassword moves the plaintext password into HashedPassword.
func (s *UserServiceImpl) hashPassword(user *domain.User) error {
	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""
	return nil
}
