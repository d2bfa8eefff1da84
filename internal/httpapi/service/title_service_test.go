package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func titleTestFixtures() (*MockTitleRepository, *MockCategoryRepository, *MockGenreRepository, *MockReviewRepository, TitleService) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo)
	return titleRepo, categoryRepo, genreRepo, reviewRepo, svc
}

func TestTitleCreate_Success(t *testing.T) {
	titleRepo, categoryRepo, genreRepo, _, svc := titleTestFixtures()

	category := "movies"
	categoryRepo.On("FindBySlug", mock.Anything, "movies").
		Return(&models.Category{ID: 3, Name: "Movies", Slug: "movies"}, nil)
	genreRepo.On("FindBySlugs", mock.Anything, []string{"drama", "sci-fi"}).
		Return([]models.Genre{
			{ID: 1, Name: "Drama", Slug: "drama"},
			{ID: 2, Name: "Sci-Fi", Slug: "sci-fi"},
		}, nil)
	titleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title"), mock.AnythingOfType("[]models.Genre")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Title).ID = 5
		}).
		Return(nil)
	categoryID := int64(3)
	titleRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Title{
			ID:         5,
			Name:       "Interstellar",
			Year:       2014,
			CategoryID: &categoryID,
			Category:   &models.Category{ID: 3, Name: "Movies", Slug: "movies"},
			Genres: []models.Genre{
				{ID: 1, Name: "Drama", Slug: "drama"},
				{ID: 2, Name: "Sci-Fi", Slug: "sci-fi"},
			},
		}, nil)

	resp, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Interstellar",
		Year:     2014,
		Category: &category,
		Genre:    []string{"drama", "sci-fi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Nil(t, resp.Rating)
	assert.Len(t, resp.Genre, 2)
	assert.Equal(t, "movies", resp.Category.Slug)
	titleRepo.AssertExpectations(t)
}

func TestTitleCreate_FutureYear(t *testing.T) {
	titleRepo, _, _, _, svc := titleTestFixtures()

	_, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name: "From the Future",
		Year: time.Now().Year() + 1,
	})

	assert.ErrorIs(t, err, ErrFutureYear)
	titleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleCreate_UnknownCategory(t *testing.T) {
	_, categoryRepo, _, _, svc := titleTestFixtures()

	category := "nope"
	categoryRepo.On("FindBySlug", mock.Anything, "nope").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Orphan",
		Year:     2000,
		Category: &category,
	})

	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTitleCreate_UnknownGenre(t *testing.T) {
	_, _, genreRepo, _, svc := titleTestFixtures()

	genreRepo.On("FindBySlugs", mock.Anything, []string{"drama", "nope"}).
		Return([]models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}, nil)

	_, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:  "Partial",
		Year:  2000,
		Genre: []string{"drama", "nope"},
	})

	assert.ErrorIs(t, err, ErrUnknownGenre)
}

func TestTitleGet_RatingIsRoundedMean(t *testing.T) {
	titleRepo, _, _, reviewRepo, svc := titleTestFixtures()

	titleRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Title{ID: 5, Name: "Interstellar", Year: 2014}, nil)
	reviewRepo.On("CountByTitle", mock.Anything, int64(5)).Return(int64(3), nil)
	// scores 8, 10, 9 -> mean 9.0 -> 9
	reviewRepo.On("AverageScore", mock.Anything, int64(5)).Return(9.0, nil)

	resp, err := svc.Get(context.Background(), 5)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Rating)
	assert.Equal(t, 9, *resp.Rating)
}

func TestTitleGet_RatingAbsentWithoutReviews(t *testing.T) {
	titleRepo, _, _, reviewRepo, svc := titleTestFixtures()

	titleRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Title{ID: 5, Name: "Interstellar", Year: 2014}, nil)
	reviewRepo.On("CountByTitle", mock.Anything, int64(5)).Return(int64(0), nil)

	resp, err := svc.Get(context.Background(), 5)

	assert.NoError(t, err)
	assert.Nil(t, resp.Rating)
	reviewRepo.AssertNotCalled(t, "AverageScore", mock.Anything, mock.Anything)
}

func TestTitleGet_NotFound(t *testing.T) {
	titleRepo, _, _, _, svc := titleTestFixtures()

	titleRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTitleUpdate_FutureYear(t *testing.T) {
	titleRepo, _, _, _, svc := titleTestFixtures()

	titleRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Title{ID: 5, Name: "Interstellar", Year: 2014}, nil)

	year := time.Now().Year() + 1
	_, err := svc.Update(context.Background(), 5, dto.UpdateTitleDTO{Year: &year})

	assert.ErrorIs(t, err, ErrFutureYear)
	titleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRatingRounding(t *testing.T) {
	assert.Nil(t, dto.Rating(0, 0))
	assert.Equal(t, 9, *dto.Rating(8.5, 2))
	assert.Equal(t, 8, *dto.Rating(8.4, 5))
	assert.Equal(t, 1, *dto.Rating(1.0, 1))
	assert.Equal(t, 10, *dto.Rating(10.0, 4))
}
