package member

import (
	"context"

	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/internal/util"
	"github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
)

// AuthService matches submitted credentials against the store snapshot and
// gates on the approval status.
type AuthService struct {
	store  domain.MemberStore
	logger *zap.Logger
}

func NewAuthService(store domain.MemberStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:  store,
		logger: logger,
	}
}

// Login fetches a fresh snapshot and matches by exact equality on both
// email and password. Credentials are stored and compared in plaintext;
// that is the behavior of the system of record and is preserved here.
// The first matching row wins when duplicates exist.
func (a *AuthService) Login(ctx context.Context, email, password string) (*domain.Member, error) {
	snapshot, err := a.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range snapshot {
		m := &snapshot[i]
		if m.Email != email || m.Password != password {
			continue
		}

		if !m.IsActive() {
			a.logger.Info("Login blocked, account not approved",
				zap.String("email", util.MaskEmail(email)),
				zap.String("status", m.Status))
			return nil, errors.NewCredentialError("Account not activated by admin", errors.ReasonNotApproved)
		}

		a.logger.Info("Login successful",
			zap.String("member_id", m.ID),
			zap.String("email", util.MaskEmail(email)))
		matched := *m
		return &matched, nil
	}

	a.logger.Info("Login rejected, invalid credentials",
		zap.String("email", util.MaskEmail(email)))
	return nil, errors.NewCredentialError("Invalid credentials", errors.ReasonInvalidCredentials)
}
