package reviews

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/werybos/barbershop-bot/internal/domain"
	"github.com/werybos/barbershop-bot/pkg/psqlbuilder"
	"github.com/werybos/barbershop-bot/pkg/txmanager"
)

// Repository репозиторий отзывов
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый репозиторий отзывов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create добавляет отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("barber_id", "client_name", "rating", "comment", "review_date").
		Values(review.BarberID, review.ClientName, review.Rating, review.Comment, review.Date).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return review, nil
}

// ListByBarber получает отзывы мастера, свежие первыми
func (r *Repository) ListByBarber(ctx context.Context, barberID int64, limit uint64) ([]*domain.Review, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "barber_id", "client_name", "rating", "comment", "review_date").
		From("reviews").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("review_date DESC, id DESC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.BarberID,
			&review.ClientName,
			&review.Rating,
			&review.Comment,
			&review.Date,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBarber - scan review: %v", ErrScanRow, err)
		}
		result = append(result, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - rows error: %v", ErrExecQuery, err)
	}

	return result, nil
}
