package users

import (
	"context"
	"fmt"

	"github.com/accountd/accountd/internal/hashing"
	"github.com/accountd/accountd/internal/models"
	"github.com/accountd/accountd/internal/tokens"
)

// Service encapsulates the credential-handling logic: registration, login,
// password change, deletion and listing. Each call is independent; the only
// shared state is the read-only configuration inside the issuer and hasher.
type Service struct {
	repo   UserRepository
	hasher hashing.Hasher
	issuer *tokens.Issuer
}

func NewService(r UserRepository, h hashing.Hasher, i *tokens.Issuer) *Service {
	return &Service{repo: r, hasher: h, issuer: i}
}

// Register hashes the password and creates the record. Duplicate emails come
// back as ErrEmailInUse straight from the store's uniqueness constraint; any
// other store failure is wrapped and propagated, never swallowed.
func (s *Service) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrInvalidInput
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.repo.Create(ctx, email, hash); err != nil {
		if err == ErrEmailInUse {
			return ErrEmailInUse
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns a signed access token. A missing
// record and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if u == nil || !s.hasher.Check(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	tok, err := s.issuer.Issue(u)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

// ChangePassword replaces the password of the token's subject.
func (s *Service) ChangePassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return tokens.ErrInvalidToken
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, claims.Subject, hash); err != nil {
		if err == ErrNotFound {
			// record vanished between token issuance and now
			return ErrNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// FromToken resolves the user record behind a bearer token.
func (s *Service) FromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, tokens.ErrInvalidToken
	}
	u, err := s.repo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || u.ID != claims.Subject {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListAll(ctx)
}
