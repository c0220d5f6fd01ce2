package ports

import (
	"context"

	"github.com/zorgnet/care-access/internal/core/domain"
)

// IdentityService maps external identity assertions to directory users.
//
// ResolveBySubjectID is the real-identity path: the subject id comes from a
// validated bearer token. ResolveByName and DemoToken exist only for the
// demo/testing entry points and must stay behind the demo gate; they are
// never reachable from a production route.
type IdentityService interface {
	ResolveBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)
	ResolveByName(ctx context.Context, name string) (*domain.User, error)
	// DemoToken resolves a user by name and mints a signed bearer token for
	// them, so the demo flow exercises the same token path as real identity.
	DemoToken(ctx context.Context, name string) (string, *domain.User, error)
}
