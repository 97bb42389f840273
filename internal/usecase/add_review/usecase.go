package add_review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/werybos/barbershop-bot/internal/domain"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
)

// Request модель запроса на добавление отзыва
type Request struct {
	BarberID   int64
	ClientName string
	Rating     int
	Comment    *string
}

// UseCase use case добавления отзыва: вставка отзыва и обновление
// накопленного рейтинга мастера выполняются в одной транзакции
type UseCase struct {
	reviewRepo   ReviewRepository
	barberRepo   BarberRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reviewRepo ReviewRepository,
	barberRepo BarberRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reviewRepo:   reviewRepo,
		barberRepo:   barberRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute добавляет отзыв и обновляет средний рейтинг мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Review, error) {
	uc.logger.Info("AddReview: barber=%d, rating=%d", req.BarberID, req.Rating)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		uc.logger.Warn("AddReview: rating %d is out of range", req.Rating)
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	review := &domain.Review{
		BarberID:   req.BarberID,
		ClientName: strings.TrimSpace(req.ClientName),
		Rating:     req.Rating,
		Comment:    req.Comment,
		Date:       uc.timeProvider.Now(),
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.barberRepo.ApplyRating(txCtx, req.BarberID, req.Rating); err != nil {
			return err
		}
		_, err := uc.reviewRepo.Create(txCtx, review)
		return err
	})
	if err != nil {
		if errors.Is(err, barbersRepo.ErrBarberNotFound) {
			uc.logger.Warn("AddReview: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("AddReview: failed to add review for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to add review: %v", ErrInternal, err)
	}

	uc.logger.Info("AddReview: review id=%d added for barber id=%d", review.ID, req.BarberID)
	return review, nil
}
