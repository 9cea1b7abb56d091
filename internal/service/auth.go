package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vaultapi/internal/auth"
	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTier        = errors.New("invalid tier")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
)

const minPasswordLen = 8

// CardDetails are billing fields supplied when registering a paid tier.
// They are stored server-side only and never serialized back to clients.
type CardDetails struct {
	Number string
	Expiry string
	CVC    string
}

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Tier     model.Tier
	Card     *CardDetails
	IP       string
}

// Profile is the authenticated user view with derived plan and storage data.
type Profile struct {
	User        *model.User `json:"user"`
	Plan        string      `json:"plan"`
	RenewalDate time.Time   `json:"renewal_date"`
	Stats       UsageStats  `json:"stats"`
}

// AuthService owns identity: registration, login, password lifecycle, plan
// changes, and the profile/storage view.
type AuthService interface {
	// Register creates an account. Duplicate emails (case-folded) fail with
	// ErrEmailTaken; the unique index is the sole guard, so two concurrent
	// registrations cannot both win.
	Register(ctx context.Context, in RegisterInput) error

	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password, ip string) (string, error)

	// Profile returns the user together with plan and storage statistics.
	Profile(ctx context.Context, userID string) (*Profile, error)

	// ChangePassword rotates the password after verifying the current one.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// RequestPasswordReset issues a single-use, short-lived reset token and
	// mails it to the account owner. The response is identical whether or
	// not the account exists.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password given a valid possession proof.
	ResetPassword(ctx context.Context, email, token, newPassword string) error

	// UpgradePlan switches the subscription tier.
	UpgradePlan(ctx context.Context, userID string, plan model.Tier) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	resets     repository.ResetTokenRepository
	tokens     *auth.TokenManager
	quota      *QuotaCalculator
	recorder   ActivityRecorder
	mailer     Mailer
	bcryptCost int
	resetTTL   time.Duration
	timingPad  []byte
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	users repository.UserRepository,
	resets repository.ResetTokenRepository,
	tokens *auth.TokenManager,
	quota *QuotaCalculator,
	recorder ActivityRecorder,
	mailer Mailer,
	bcryptCost int,
	resetTTL time.Duration,
) AuthService {
	if bcryptCost < 12 {
		bcryptCost = 12
	}
	// The pad is compared against when an email is unknown, so it must cost
	// exactly as much as a real hash or the miss is measurable.
	pad, _ := bcrypt.GenerateFromPassword([]byte("vaultapi-timing-pad"), bcryptCost)
	return &authService{
		users:      users,
		resets:     resets,
		tokens:     tokens,
		quota:      quota,
		recorder:   recorder,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
		timingPad:  pad,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	email := model.NormalizeEmail(in.Email)
	if email == "" {
		return ErrEmailRequired
	}
	if len(in.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	tier := in.Tier
	if tier == "" {
		tier = model.TierPersonal
	}
	if !tier.Valid() {
		return ErrInvalidTier
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Tier:         tier,
		IsPaid:       true, // free tier counts as "active", not literally paid
		IsVerified:   true, // no verification step exists
		CreatedAt:    time.Now().UTC(),
	}
	if tier != model.TierPersonal && in.Card != nil {
		u.CardNumber = in.Card.Number
		u.CardExpiry = in.Card.Expiry
		u.CardCVC = in.Card.CVC
	}

	stored, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.recorder.Record(ctx, stored.ID, model.ActionRegister,
		fmt.Sprintf("New %s account registered", stored.Tier), in.IP)
	return nil
}

func (s *authService) Login(ctx context.Context, email, password, ip string) (string, error) {
	u, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		// Burn a comparison anyway so unknown emails cost the same as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword(s.timingPad, []byte(password))
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	s.recorder.Record(ctx, u.ID, model.ActionLogin, "User signed in", ip)

	token, err := s.tokens.Issue(u.ID, u.Tier)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	stats, err := s.quota.ComputeUsage(ctx, u.ID, u.Tier)
	if err != nil {
		return nil, fmt.Errorf("compute usage: %w", err)
	}

	return &Profile{
		User:        u,
		Plan:        strings.ToUpper(string(u.Tier)) + " PLAN",
		RenewalDate: u.CreatedAt.AddDate(1, 0, 0),
		Stats:       stats,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.recorder.Record(ctx, u.ID, model.ActionSecurityUpdate, "User changed password", "")
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same outcome as success: the caller learns nothing about
			// whether the account exists.
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expiry := time.Now().UTC().Add(s.resetTTL)
	if err := s.resets.Create(ctx, u.ID, hashResetToken(token), expiry); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, u.Email, token); err != nil {
		logJSON(map[string]any{
			"level":   "error",
			"msg":     "reset_mail_failed",
			"user_id": u.ID,
			"error":   err.Error(),
		})
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}

	userID, err := s.resets.Consume(ctx, hashResetToken(token), time.Now().UTC())
	if err != nil {
		return ErrInvalidResetToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrInvalidResetToken
	}
	if u.Email != model.NormalizeEmail(email) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.recorder.Record(ctx, u.ID, model.ActionPasswordReset, "Password reset via recovery token", "")
	return nil
}

func (s *authService) UpgradePlan(ctx context.Context, userID string, plan model.Tier) (*model.User, error) {
	if !plan.Valid() {
		return nil, ErrInvalidTier
	}
	if err := s.users.UpdateTier(ctx, userID, plan); err != nil {
		return nil, fmt.Errorf("update tier: %w", err)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.recorder.Record(ctx, u.ID, model.ActionUpgrade,
		fmt.Sprintf("Plan changed to %s", plan), "")
	return u, nil
}

// newResetToken returns 32 random bytes hex-encoded.
func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken derives the stored form of a reset token. Only the digest is
// persisted, so a database leak does not yield usable tokens.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
