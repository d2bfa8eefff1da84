package service

import (
	"context"
	"testing"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestUserCreate_ByAdminIsConfirmed(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "bob").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "bob@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*models.User)
			assert.True(t, created.Confirmed)
		}).
		Return(nil)

	resp, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Role:     models.RoleModerator,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, resp.Role)
	userRepo.AssertExpectations(t)
}

func TestUserCreate_ReservedUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.ErrorIs(t, err, ErrReservedUsername)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserCreate_DefaultRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "bob").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "bob@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	resp, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
}

func TestUserUpdate_RoleStrippedForNonAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	existing := &models.User{ID: "user-1", Username: "bob", Email: "bob@example.com", Role: models.RoleUser}

	userRepo.On("FindByUsername", mock.Anything, "bob").Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	role := models.RoleAdmin
	bio := "just a user"
	resp, err := svc.Update(context.Background(), "bob", dto.UpdateUserRequest{Role: &role, Bio: &bio}, false)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Equal(t, "just a user", resp.Bio)
}

func TestUserUpdate_RoleAppliedForAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	existing := &models.User{ID: "user-1", Username: "bob", Email: "bob@example.com", Role: models.RoleUser}

	userRepo.On("FindByUsername", mock.Anything, "bob").Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	role := models.RoleModerator
	resp, err := svc.Update(context.Background(), "bob", dto.UpdateUserRequest{Role: &role}, true)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, resp.Role)
}

func TestUserUpdate_EmailCollision(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	existing := &models.User{ID: "user-1", Username: "bob", Email: "bob@example.com"}
	other := &models.User{ID: "user-2", Username: "carol", Email: "carol@example.com"}

	userRepo.On("FindByUsername", mock.Anything, "bob").Return(existing, nil)
	userRepo.On("FindByEmail", mock.Anything, "carol@example.com").Return(other, nil)

	email := "carol@example.com"
	_, err := svc.Update(context.Background(), "bob", dto.UpdateUserRequest{Email: &email}, false)

	assert.ErrorIs(t, err, ErrEmailInUse)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserDelete_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Delete", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}
