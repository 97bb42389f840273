package barbers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/werybos/barbershop-bot/internal/domain"
	"github.com/werybos/barbershop-bot/pkg/psqlbuilder"
	"github.com/werybos/barbershop-bot/pkg/txmanager"
)

const uniqueViolation = "23505"

// Repository репозиторий мастеров
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый репозиторий мастеров
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает нового мастера. telegram_id должен быть уникален
func (r *Repository) Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	schedule, err := barber.Schedule.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode schedule: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("barbers").
		Columns("name", "telegram_id", "is_active", "schedule", "rating", "rating_count").
		Values(barber.Name, barber.TelegramID, barber.IsActive, schedule, barber.Rating, barber.RatingCount).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&barber.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrTelegramIDTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return barber, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTelegramID получает мастера по Telegram ID
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID string) (*domain.Barber, error) {
	return r.getOne(ctx, squirrel.Eq{"telegram_id": telegramID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Barber, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "telegram_id", "is_active", "schedule", "rating", "rating_count",
	).
		From("barbers").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var barber domain.Barber
	var schedule string
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&barber.ID,
		&barber.Name,
		&barber.TelegramID,
		&barber.IsActive,
		&schedule,
		&barber.Rating,
		&barber.RatingCount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan barber: %v", ErrScanRow, err)
	}

	desc, err := domain.ParseScheduleDescriptor(schedule)
	if err != nil {
		// Битое расписание в БД не должно ронять запрос целиком:
		// для такого мастера слоты просто не сгенерируются
		desc = domain.ScheduleDescriptor{}
	}
	barber.Schedule = desc

	return &barber, nil
}

// ListActive получает всех активных мастеров, упорядоченных по ID
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Barber, error) {
	return r.list(ctx, squirrel.Eq{"is_active": true})
}

// ListAll получает всех мастеров, включая неактивных
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Barber, error) {
	return r.list(ctx, nil)
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq) ([]*domain.Barber, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "name", "telegram_id", "is_active", "schedule", "rating", "rating_count",
	).
		From("barbers").
		OrderBy("id ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		var barber domain.Barber
		var schedule string
		if err := rows.Scan(
			&barber.ID,
			&barber.Name,
			&barber.TelegramID,
			&barber.IsActive,
			&schedule,
			&barber.Rating,
			&barber.RatingCount,
		); err != nil {
			return nil, fmt.Errorf("%w: list - scan barber: %v", ErrScanRow, err)
		}
		if desc, err := domain.ParseScheduleDescriptor(schedule); err == nil {
			barber.Schedule = desc
		}
		barbers = append(barbers, &barber)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrExecQuery, err)
	}

	return barbers, nil
}

// UpdateSchedule обновляет расписание мастера
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, schedule domain.ScheduleDescriptor) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	encoded, err := schedule.Encode()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - encode schedule: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("barbers").
		Set("schedule", encoded).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

// UpdateName обновляет имя мастера
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("barbers").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateName - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateName - execute update: %v", ErrExecQuery, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

// ApplyRating добавляет новую оценку к накопленному среднему мастера
// Вызывается в одной транзакции со вставкой отзыва
func (r *Repository) ApplyRating(ctx context.Context, id int64, rating int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	// Среднее пересчитывается на стороне БД по текущим значениям строки
	query := `UPDATE barbers
	          SET rating = (rating * rating_count + $1) / (rating_count + 1),
	              rating_count = rating_count + 1
	          WHERE id = $2`

	res, err := executor.ExecContext(ctx, query, float64(rating), id)
	if err != nil {
		return fmt.Errorf("%w: ApplyRating - execute update: %v", ErrExecQuery, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

// Delete удаляет мастера. Записи к нему не удаляются и не переназначаются:
// чтение записей терпимо к отсутствующему мастеру
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrBarberNotFound
	}

	return nil
}
