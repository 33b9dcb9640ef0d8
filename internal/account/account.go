package account

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Reserved demo accounts. These exist from first boot and can never be
// shadowed by self-registration, even if someone deletes them from storage.
const (
	ReservedAdminEmail = "admin@vanphal.farm"
	reservedAdminPass  = "admin@123"
	ReservedDemoEmail  = "demo@vanphal.farm"
	reservedDemoPass   = "user@123"
)

// Service owns user identity and sessions. It is the sole authority on who
// can buy and who can administer. Credentials are stored and compared as
// plaintext and sessions never expire — both deliberate carry-overs from the
// system this replaces; see DESIGN.md.
type Service struct {
	store  store.Store
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewService creates a new account service.
func NewService(st store.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger.With().Str("service", "account").Logger(),
	}
}

// EnsureReservedAccounts seeds the built-in admin and demo customer if they
// are missing. Safe to call on every startup.
func (s *Service) EnsureReservedAccounts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credentials(ctx)
	if err != nil {
		return err
	}

	reserved := []model.Credential{
		{
			User: model.User{
				ID:    "admin-1",
				Name:  "Vanphal Admin",
				Email: ReservedAdminEmail,
				Role:  model.RoleAdmin,
			},
			Password: reservedAdminPass,
		},
		{
			User: model.User{
				ID:    "user-demo",
				Name:  "Himalayan Explorer",
				Email: ReservedDemoEmail,
				Role:  model.RoleCustomer,
			},
			Password: reservedDemoPass,
		},
	}

	changed := false
	for _, r := range reserved {
		if s.findByEmail(creds, r.Email) == nil {
			creds = append(creds, r)
			changed = true
			s.logger.Info().Str("email", r.Email).Msg("seeded reserved account")
		}
	}

	if !changed {
		return nil
	}
	return s.saveCredentials(ctx, creds)
}

// Login checks the email and password against the stored credential record.
// A blocked account fails with a distinct, user-visible reason rather than
// masquerading as a wrong password. On success a persisted session is
// established holding only the public profile.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	creds, err := s.credentials(ctx)
	if err != nil {
		return "", nil, err
	}

	cred := s.findByEmail(creds, strings.TrimSpace(email))
	if cred == nil || cred.Password != password {
		return "", nil, model.ErrInvalidCredentials
	}
	if cred.IsBlocked {
		s.logger.Warn().Str("email", cred.Email).Msg("blocked account login attempt")
		return "", nil, model.ErrAccountBlocked
	}

	token, err := s.createSession(ctx, cred.User)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", cred.ID).Str("role", string(cred.Role)).Msg("user logged in")

	user := cred.User
	return token, &user, nil
}

// Register creates a customer account and logs it in. Registration fails
// with ErrDuplicateEmail for any email already in use, the reserved demo
// accounts included, and never alters the existing account.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	creds, err := s.credentials(ctx)
	if err != nil {
		s.mu.Unlock()
		return "", nil, err
	}

	if email == ReservedAdminEmail || email == ReservedDemoEmail || s.findByEmail(creds, email) != nil {
		s.mu.Unlock()
		return "", nil, model.ErrDuplicateEmail
	}

	cred := model.Credential{
		User: model.User{
			ID:    "user-" + uuid.NewString(),
			Name:  name,
			Email: email,
			Role:  model.RoleCustomer,
		},
		Password: password,
	}

	creds = append(creds, cred)
	if err := s.saveCredentials(ctx, creds); err != nil {
		s.mu.Unlock()
		return "", nil, err
	}
	s.mu.Unlock()

	token, err := s.createSession(ctx, cred.User)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", cred.ID).Msg("user registered")

	user := cred.User
	return token, &user, nil
}

// Logout destroys the session only; registered accounts are untouched.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, store.SessionKey(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// UserFromToken resolves a session token to the logged-in user's public
// profile, or ErrUnauthenticated if no such session exists.
func (s *Service) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, model.ErrUnauthenticated
	}

	var user model.User
	found, err := s.store.Load(ctx, store.SessionKey(token), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, model.ErrUnauthenticated
	}
	return &user, nil
}

// UpdateProfile merges profile fields into the caller's account and keeps the
// session in step. Email, role and the blocked flag are not customer-editable.
func (s *Service) UpdateProfile(ctx context.Context, token string, profile model.User) (*model.User, error) {
	user, err := s.UserFromToken(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}

	var updated *model.User
	for i := range creds {
		if creds[i].ID != user.ID {
			continue
		}
		if profile.Name != "" {
			creds[i].Name = profile.Name
		}
		creds[i].Avatar = profile.Avatar
		creds[i].Phone = profile.Phone
		creds[i].Address = profile.Address
		creds[i].City = profile.City
		creds[i].State = profile.State
		creds[i].Zip = profile.Zip
		u := creds[i].User
		updated = &u
		break
	}
	if updated == nil {
		return nil, model.ErrUnauthenticated
	}

	if err := s.saveCredentials(ctx, creds); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, store.SessionKey(token), updated); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	return updated, nil
}

// ListUsers returns every account's public profile for the back office.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	creds, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(creds))
	for _, c := range creds {
		users = append(users, c.User)
	}
	return users, nil
}

// SetBlocked flips an account's blocked flag. Blocking takes effect at the
// next login; live sessions are left alone, matching the behaviour of the
// system this replaces.
func (s *Service) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credentials(ctx)
	if err != nil {
		return err
	}
	for i := range creds {
		if creds[i].ID == userID {
			creds[i].IsBlocked = blocked
			return s.saveCredentials(ctx, creds)
		}
	}
	return model.ErrInvalidCredentials
}

// DeleteUser removes an account. Its existing sessions are not enumerable
// through the key-value store, so they simply dangle until logout.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credentials(ctx)
	if err != nil {
		return err
	}
	kept := creds[:0]
	for _, c := range creds {
		if c.ID != userID {
			kept = append(kept, c)
		}
	}
	return s.saveCredentials(ctx, kept)
}

func (s *Service) createSession(ctx context.Context, user model.User) (string, error) {
	token := uuid.NewString()
	if err := s.store.Save(ctx, store.SessionKey(token), user); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

func (s *Service) credentials(ctx context.Context) ([]model.Credential, error) {
	var creds []model.Credential
	if _, err := s.store.Load(ctx, store.KeyRegisteredUsers, &creds); err != nil {
		return nil, fmt.Errorf("failed to load registered users: %w", err)
	}
	if creds == nil {
		creds = []model.Credential{}
	}
	return creds, nil
}

func (s *Service) saveCredentials(ctx context.Context, creds []model.Credential) error {
	if err := s.store.Save(ctx, store.KeyRegisteredUsers, creds); err != nil {
		return fmt.Errorf("failed to save registered users: %w", err)
	}
	return nil
}

func (s *Service) findByEmail(creds []model.Credential, email string) *model.Credential {
	for i := range creds {
		if strings.EqualFold(creds[i].Email, email) {
			return &creds[i]
		}
	}
	return nil
}
