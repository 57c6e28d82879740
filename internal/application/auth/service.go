package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "filehub/internal/domain/auth"
	"filehub/internal/domain/file"
	"filehub/internal/domain/user"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)
)

// Service defines the authentication service interface
type Service interface {
	Register(req domain.RegisterRequest) (*user.User, error)
	Login(req domain.LoginRequest) (*domain.LoginResponse, error)
	ValidateToken(token string) (*user.User, error)
	Logout(token string) error
	ChangePassword(u *user.User, current, next string) error
	StartSession(u *user.User) (*domain.LoginResponse, error)
	AccountRole() (user.Role, error)
	PurgeExpiredSessions() (int64, error)
	HashPassword(password string) (string, error)
	CheckPassword(hashedPassword, password string) bool
}

// SessionRepository defines the session storage interface
type SessionRepository interface {
	Create(session *domain.Session) error
	GetByToken(token string) (*domain.Session, error)
	Delete(token string) error
	DeleteByUserID(userID string) error
	DeleteExpired(now time.Time) (int64, error)
}

type service struct {
	userRepo    user.Repository
	sessionRepo SessionRepository
	cache       *SessionCache
	tokenExpiry time.Duration
	defaultRole user.Role
	now         func() time.Time
}

// NewService creates a new auth service. cache may be nil to disable
// session caching. defaultRole is given to every account except the first.
func NewService(userRepo user.Repository, sessionRepo SessionRepository, cache *SessionCache, tokenExpiry time.Duration, defaultRole user.Role) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		tokenExpiry: tokenExpiry,
		defaultRole: defaultRole,
		now:         time.Now,
	}
}

// ValidUsername reports whether name can be used as a username. Usernames
// name file namespaces, so they must also be valid path segments.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name) && file.ValidateName(name) == nil
}

func (s *service) Register(req domain.RegisterRequest) (*user.User, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, user.ErrInvalidEmail
	}

	if !ValidUsername(req.Username) {
		return nil, user.ErrInvalidUsername
	}

	if len(req.Password) < 6 {
		return nil, user.ErrInvalidPassword
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, user.ErrUserAlreadyExists
	}

	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, user.ErrUserAlreadyExists
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role, err := s.AccountRole()
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		Email:        req.Email,
		Username:     req.Username,
		Password:     hashedPassword,
		Role:         role,
		AuthProvider: user.AuthProviderLocal,
	}

	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (s *service) Login(req domain.LoginRequest) (*domain.LoginResponse, error) {
	u, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// Google-only accounts have no password to check against
	if u.Password == "" || !s.CheckPassword(u.Password, req.Password) {
		return nil, user.ErrInvalidCredentials
	}

	return s.StartSession(u)
}

// AccountRole returns the role for an account about to be created. The
// first account becomes admin.
func (s *service) AccountRole() (user.Role, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return user.RoleAdmin, nil
	}
	return s.defaultRole, nil
}

// StartSession issues a new session token for u
func (s *service) StartSession(u *user.User) (*domain.LoginResponse, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &domain.Session{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: now.Add(s.tokenExpiry),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	s.cache.Add(session)

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt.Unix(),
	}, nil
}

func (s *service) ValidateToken(token string) (*user.User, error) {
	session, ok := s.cache.Get(token)
	if !ok {
		var err error
		session, err = s.sessionRepo.GetByToken(token)
		if err != nil {
			return nil, user.ErrUnauthorized
		}
		s.cache.Add(session)
	}

	if session.Expired(s.now()) {
		s.cache.Remove(token)
		s.sessionRepo.Delete(token)
		return nil, user.ErrUnauthorized
	}

	u, err := s.userRepo.GetByID(session.UserID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrUnauthorized
	}
	return u, err
}

func (s *service) Logout(token string) error {
	s.cache.Remove(token)
	return s.sessionRepo.Delete(token)
}

// ChangePassword replaces the password of a local account and ends all
// of its sessions
func (s *service) ChangePassword(u *user.User, current, next string) error {
	if u.Password == "" {
		return user.ErrPasswordNotSet
	}
	if len(next) < 6 {
		return user.ErrInvalidPassword
	}
	if !s.CheckPassword(u.Password, current) {
		return user.ErrInvalidCredentials
	}

	hashed, err := s.HashPassword(next)
	if err != nil {
		return err
	}
	u.Password = hashed
	if err := s.userRepo.Update(u); err != nil {
		return err
	}

	s.cache.RemoveUser(u.ID)
	return s.sessionRepo.DeleteByUserID(u.ID)
}

func (s *service) PurgeExpiredSessions() (int64, error) {
	return s.sessionRepo.DeleteExpired(s.now())
}

func (s *service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *service) CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
