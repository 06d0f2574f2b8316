package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/dto"
	"inkpost/backend/app/models"
	"inkpost/backend/app/repo"
	"inkpost/backend/app/validation"
	"inkpost/backend/global"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials = "Invalid username or password."
	msgTooManyFailures    = "Too many failed log-in attempts. Try again later."
	msgUserNotFound       = "User not found."
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type UserService struct {
	users    *repo.UserRepository
	hasher   Hasher
	throttle LoginThrottle

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one hash comparison.
	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users *repo.UserRepository, hasher Hasher, throttle LoginThrottle) *UserService {
	if throttle == nil {
		throttle = NoThrottle
	}
	return &UserService{users: users, hasher: hasher, throttle: throttle}
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			global.Logger.Error().Err(err).Msg("generate dummy password hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// SignUp registers a READER. Username uniqueness is checked before e-mail.
func (s *UserService) SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if n, err := s.users.CountByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("count username: %w", err)
	} else if n > 0 {
		return nil, apperr.Conflict("This username is already taken.")
	}
	if n, err := s.users.CountByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("count email: %w", err)
	} else if n > 0 {
		return nil, apperr.Conflict("This e-mail is already taken.")
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Username: req.Username, Email: req.Email, PasswordHash: hash, Role: models.RoleReader}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.KindConflict, "This username or e-mail is already taken.", err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate checks credentials. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("Username and password are required.")
	}
	blocked, err := s.throttle.Blocked(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperr.TooManyRequests(msgTooManyFailures)
	}
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}
	var hash string
	if u != nil {
		hash = u.PasswordHash
	} else {
		hash = s.dummy()
	}
	if !s.hasher.Verify(req.Password, hash) || u == nil {
		if ferr := s.throttle.Fail(ctx, req.Username); ferr != nil {
			return nil, ferr
		}
		return nil, apperr.Unauthenticated(msgInvalidCredentials)
	}
	if err := s.throttle.Reset(ctx, req.Username); err != nil {
		return nil, err
	}
	return u, nil
}

// UpgradeRole promotes the user to AUTHOR. changed is false when the user
// already was one.
func (s *UserService) UpgradeRole(ctx context.Context, id string) (u *models.User, changed bool, err error) {
	changed, err = s.users.PromoteToAuthor(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("promote user: %w", err)
	}
	u, err = s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	return u, changed, nil
}

func (s *UserService) Profile(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
