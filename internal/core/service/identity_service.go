package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// IdentityService maps external identity assertions to directory users.
type IdentityService struct {
	repo      ports.DirectoryRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewIdentityService(repo ports.DirectoryRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &IdentityService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// ResolveBySubjectID looks up the active user whose external subject id
// matches exactly and case-sensitively.
func (s *IdentityService) ResolveBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	if subjectID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindUserBySubjectID(ctx, subjectID)
}

// ResolveByName looks up an active user by "First" or "First Last". Demo-only:
// ambiguous names resolve to the first row in store order, and callers must
// not rely on more than "some active user whose name matches".
func (s *IdentityService) ResolveByName(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrUserNotFound
	}

	first, last := name, ""
	if i := strings.IndexByte(name, ' '); i >= 0 {
		first, last = name[:i], name[i+1:]
	}
	return s.repo.FindUserByName(ctx, first, last)
}

// DemoToken resolves a user by name and mints an HS256 bearer token carrying
// the user's subject id, so the demo flow goes through the same token path as
// real identity. Only reachable through demo-gated routes.
func (s *IdentityService) DemoToken(ctx context.Context, name string) (string, *domain.User, error) {
	user, err := s.ResolveByName(ctx, name)
	if err != nil {
		return "", nil, err
	}

	claims := jwt.MapClaims{
		"oid":  user.SubjectID,
		"name": user.FullName(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("demo token issued")
	return token, user, nil
}
