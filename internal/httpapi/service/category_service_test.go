package service

import (
	"context"
	"testing"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCategoryCreate_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo)

	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Category).ID = 1
		}).
		Return(nil)

	resp, err := svc.Create(context.Background(), dto.CreateCategoryDTO{Name: "Movies", Slug: "movies"})

	assert.NoError(t, err)
	assert.Equal(t, "Movies", resp.Name)
	assert.Equal(t, "movies", resp.Slug)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryCreate_InvalidSlug(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo)

	for _, slug := range []string{"has space", "ö-umlaut", "slash/y", ""} {
		_, err := svc.Create(context.Background(), dto.CreateCategoryDTO{Name: "Bad", Slug: slug})
		assert.ErrorIs(t, err, ErrInvalidSlug, "slug %q", slug)
	}
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryCreate_SlugInUse(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo)

	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), dto.CreateCategoryDTO{Name: "Movies", Slug: "movies"})

	assert.ErrorIs(t, err, ErrSlugInUse)
}

func TestCategoryDelete_NotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo)

	categoryRepo.On("DeleteBySlug", mock.Anything, "ghost").
		Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryList(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo)

	categoryRepo.On("List", mock.Anything, "", 1, 20).
		Return([]models.Category{
			{ID: 2, Name: "Books", Slug: "books"},
			{ID: 1, Name: "Movies", Slug: "movies"},
		}, int64(2), nil)

	resp, err := svc.List(context.Background(), "", 1, 20)

	assert.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
}
