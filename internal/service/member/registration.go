package member

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/internal/util"
	"github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// RegistrationService validates signup input and appends new PENDING
// records to the store.
type RegistrationService struct {
	store  domain.MemberStore
	logger *zap.Logger
}

func NewRegistrationService(store domain.MemberStore, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		store:  store,
		logger: logger,
	}
}

// SignupInput carries the six required form fields.
type SignupInput struct {
	Name     string
	HQ       string
	CMSID    string
	Email    string
	Password string
	Mobile   string
}

func (in SignupInput) trimmed() SignupInput {
	return SignupInput{
		Name:     strings.TrimSpace(in.Name),
		HQ:       strings.TrimSpace(in.HQ),
		CMSID:    strings.TrimSpace(in.CMSID),
		Email:    strings.TrimSpace(in.Email),
		Password: strings.TrimSpace(in.Password),
		Mobile:   strings.TrimSpace(in.Mobile),
	}
}

// Register runs the full signup flow: trim, validate completeness, validate
// mobile format, check email uniqueness against a snapshot listed at flow
// start, then append one record with status PENDING. The snapshot check and
// the append are two separate store operations; a concurrent registration
// with the same email fits in the window between them and is not detected.
// Nothing is written on any rejection.
func (r *RegistrationService) Register(ctx context.Context, in SignupInput) (*domain.Member, error) {
	in = in.trimmed()

	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"hq", in.HQ},
		{"cmsid", in.CMSID},
		{"email", in.Email},
		{"password", in.Password},
		{"mobile", in.Mobile},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, errors.NewValidationError("All fields required", f.field, f.value)
		}
	}

	if !mobilePattern.MatchString(in.Mobile) {
		return nil, errors.NewValidationError("Mobile must be 10 digits", "mobile", in.Mobile)
	}

	snapshot, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range snapshot {
		if existing.Email == in.Email {
			return nil, errors.NewValidationError("Email already registered", "email", in.Email)
		}
	}

	record := domain.Member{
		ID:       uuid.NewString()[:8],
		Name:     in.Name,
		HQ:       in.HQ,
		CMSID:    in.CMSID,
		Email:    in.Email,
		Password: in.Password,
		Mobile:   in.Mobile,
		Status:   domain.StatusPending,
	}

	if err := r.store.Append(ctx, record); err != nil {
		return nil, err
	}

	r.logger.Info("Member registered",
		zap.String("member_id", record.ID),
		zap.String("email", util.MaskEmail(record.Email)),
		zap.String("cmsid", record.CMSID))

	return &record, nil
}
