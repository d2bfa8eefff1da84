package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/confirmation"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// capturingSender records every mail so tests can read the plaintext code
// back out of the message body.
type capturingSender struct {
	mu    sync.Mutex
	mails []capturedMail
}

type capturedMail struct {
	to, subject, body string
}

func (s *capturingSender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mails = append(s.mails, capturedMail{to: to, subject: subject, body: body})
	return nil
}

func (s *capturingSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.mails) == 0 {
		t.Fatal("no mail was sent")
	}
	body := s.mails[len(s.mails)-1].body
	idx := strings.LastIndex(body, ": ")
	if idx == -1 {
		t.Fatalf("unexpected mail body: %q", body)
	}
	return body[idx+2:]
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		AccessTokenTTL:      time.Hour,
		ConfirmationCodeTTL: time.Hour,
	}
}

func newTestAuthService(userRepo *MockUserRepository, sender *capturingSender) AuthService {
	return NewAuthService(
		userRepo,
		confirmation.NewMemoryStore(),
		sender,
		testAuthConfig(),
		slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	)
}

func TestSignup_CreatesUserAndSendsCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = "user-1"
		}).
		Return(nil)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Len(t, sender.mails, 1)
	assert.Equal(t, "alice@example.com", sender.mails[0].to)
	userRepo.AssertExpectations(t)
}

func TestSignup_ReservedUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "me", "me@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Signup(context.Background(), "me", "me@example.com")

	assert.ErrorIs(t, err, ErrReservedUsername)
	assert.Empty(t, sender.mails)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_UsernameInUse(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "other@example.com"}

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.ErrorIs(t, err, ErrUsernameInUse)
}

func TestSignup_ResendForExistingPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(existing, nil)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Len(t, sender.mails, 1)
	// no Create, no uniqueness probing on the resend path
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestIssueToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(existing, nil)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")
	assert.NoError(t, err)

	code := sender.lastCode(t)

	token, err := svc.IssueToken(context.Background(), "alice", code)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, existing.Confirmed)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestIssueToken_SingleUse(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Confirmed: true}

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(existing, nil)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")
	assert.NoError(t, err)

	code := sender.lastCode(t)

	_, err = svc.IssueToken(context.Background(), "alice", code)
	assert.NoError(t, err)

	_, err = svc.IssueToken(context.Background(), "alice", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueToken_WrongCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(existing, nil)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")
	assert.NoError(t, err)

	_, err = svc.IssueToken(context.Background(), "alice", "not-the-code")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueToken_ReissueInvalidatesOldCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Confirmed: true}

	userRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(existing, nil)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")
	assert.NoError(t, err)
	oldCode := sender.lastCode(t)

	_, err = svc.Signup(context.Background(), "alice", "alice@example.com")
	assert.NoError(t, err)
	newCode := sender.lastCode(t)

	_, err = svc.IssueToken(context.Background(), "alice", oldCode)
	assert.ErrorIs(t, err, ErrInvalidCode)

	token, err := svc.IssueToken(context.Background(), "alice", newCode)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &capturingSender{}
	svc := newTestAuthService(userRepo, sender)

	userRepo.On("FindByUsername", mock.Anything, "ghost").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.IssueToken(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateToken_BadToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, &capturingSender{})

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
