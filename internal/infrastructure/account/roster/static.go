package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtside/league-night/internal/domain/user"
	"github.com/courtside/league-night/internal/usecase"
)

// StaticVerifier resolves tokens of the form "<player-id>" or
// "admin:<user-id>" without a membership service. Development only.
type StaticVerifier struct{}

func (StaticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if rest, ok := strings.CutPrefix(token, "admin:"); ok {
		if strings.TrimSpace(rest) == "" {
			return user.Principal{}, fmt.Errorf("%w: empty admin token", usecase.ErrUnauthorized)
		}
		return user.Principal{UserID: rest, Role: user.RoleAdmin}, nil
	}

	return user.Principal{UserID: token, Role: user.RolePlayer}, nil
}
