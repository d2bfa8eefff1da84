package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/confirmation"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const mailSubject = "Confirmation code for signing in to ReviewHub"

// Claims carried by the access token. Role is included for logging only;
// authorization always reloads the user record.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Signup registers a user (or idempotently re-triggers the code for an
	// existing exact username/email pair) and emails a confirmation code.
	Signup(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken redeems a confirmation code for a bearer access token.
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	codes    confirmation.Store
	sender   mail.Sender
	logger   *slog.Logger

	jwtSecret      string
	accessTokenTTL time.Duration
	codeTTL        time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes confirmation.Store,
	sender mail.Sender,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		sender:         sender,
		logger:         logger,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		codeTTL:        cfg.ConfirmationCodeTTL,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	// An exact (username, email) match is the resend path: no new record,
	// a fresh code replaces whatever was pending.
	user, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	if err == nil {
		return user, s.issueCode(ctx, user)
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	if username == "me" {
		return nil, ErrReservedUsername
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameInUse
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	}

	user = &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// pre-checks race with concurrent signups; the unique index decides
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameInUse
		}
		return nil, err
	}

	return user, s.issueCode(ctx, user)
}

// issueCode generates a single-use code, stores its hash with a TTL and
// mails the plaintext. Mail failures are logged, not returned: the code can
// always be re-requested through signup.
func (s *authService) issueCode(ctx context.Context, user *models.User) error {
	code := uuid.New().String()

	hash, err := confirmation.HashCode(code)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := s.codes.Save(ctx, user.Username, hash, s.codeTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("Confirmation code: %s", code)
	if err := s.sender.Send(ctx, user.Email, mailSubject, body); err != nil {
		s.logger.Error("failed to send confirmation mail", "username", user.Username, "error", err)
	}
	return nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	hash, err := s.codes.Get(ctx, username)
	if err != nil {
		if errors.Is(err, confirmation.ErrNoCode) {
			return "", ErrInvalidCode
		}
		return "", err
	}
	if err := confirmation.VerifyCode(hash, code); err != nil {
		return "", ErrInvalidCode
	}

	// single use: a redeemed code never works twice
	if err := s.codes.Delete(ctx, username); err != nil {
		return "", err
	}

	if !user.Confirmed {
		user.Confirmed = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return "", err
		}
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
