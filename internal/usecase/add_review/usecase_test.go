package add_review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werybos/barbershop-bot/internal/domain"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
)

type fakeReviewRepo struct {
	created *domain.Review
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	created := *review
	created.ID = 1
	f.created = &created
	return &created, nil
}

type fakeBarberRepo struct {
	applyErr error
	applied  []int
}

func (f *fakeBarberRepo) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	return &domain.Barber{ID: id}, nil
}

func (f *fakeBarberRepo) ApplyRating(ctx context.Context, id int64, rating int) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, rating)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_AddsReviewAndRating(t *testing.T) {
	reviews := &fakeReviewRepo{}
	barbers := &fakeBarberRepo{}
	uc := NewUseCase(reviews, barbers, fakeTxManager{}, nopLogger{})

	comment := "Отличный мастер"
	review, err := uc.Execute(context.Background(), &Request{
		BarberID:   1,
		ClientName: "Иван",
		Rating:     5,
		Comment:    &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, []int{5}, barbers.applied)
	require.NotNil(t, reviews.created)
	assert.Equal(t, "Иван", reviews.created.ClientName)
	assert.False(t, reviews.created.Date.IsZero())
}

func TestExecute_RatingOutOfRange(t *testing.T) {
	uc := NewUseCase(&fakeReviewRepo{}, &fakeBarberRepo{}, fakeTxManager{}, nopLogger{})

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ClientName: "Иван", Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestExecute_BarberGone(t *testing.T) {
	barbers := &fakeBarberRepo{applyErr: barbersRepo.ErrBarberNotFound}
	uc := NewUseCase(&fakeReviewRepo{}, barbers, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BarberID: 99, ClientName: "Иван", Rating: 4})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_EmptyClientName(t *testing.T) {
	uc := NewUseCase(&fakeReviewRepo{}, &fakeBarberRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ClientName: "  ", Rating: 4})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
