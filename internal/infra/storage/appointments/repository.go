package appointments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/werybos/barbershop-bot/internal/domain"
	"github.com/werybos/barbershop-bot/pkg/psqlbuilder"
	"github.com/werybos/barbershop-bot/pkg/txmanager"
)

const uniqueViolation = "23505"

var appointmentColumns = []string{
	"id", "user_id", "client_name", "client_phone",
	"barber_id", "service_id", "visit_date", "start_time", "status",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый репозиторий записей
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Частичный уникальный индекс (barber_id, visit_date, start_time) WHERE
// status='pending' делает вставку единственной точкой разрешения конфликта:
// из двух конкурирующих записей на один слот вторая получает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns("user_id", "client_name", "client_phone", "barber_id", "service_id", "visit_date", "start_time", "status").
		Values(appt.UserID, appt.ClientName, appt.ClientPhone, appt.BarberID, appt.ServiceID, appt.Date, appt.Time, appt.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListPendingTimes получает времена всех ожидающих записей мастера на дату,
// по возрастанию времени
func (r *Repository) ListPendingTimes(ctx context.Context, barberID int64, date time.Time) ([]string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("appointments").
		Where(squirrel.Eq{
			"barber_id":  barberID,
			"visit_date": date,
			"status":     domain.StatusPending,
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListPendingTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPendingTimes - rows error: %v", ErrExecQuery, err)
	}

	return times, nil
}

// ListPendingBefore получает все ожидающие записи, чьи дата и время строго
// раньше переданного момента. Используется архивной уборкой
func (r *Repository) ListPendingBefore(ctx context.Context, date time.Time, t string) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Or{
			squirrel.Lt{"visit_date": date},
			squirrel.And{
				squirrel.Eq{"visit_date": date},
				squirrel.Lt{"start_time": t},
			},
		}).
		OrderBy("visit_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByUser получает ожидающие записи пользователя
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID, "status": domain.StatusPending}).
		OrderBy("visit_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListPendingDetails получает ожидающие записи с именами мастера и услуги.
// userID = nil - все записи (административная выгрузка).
// LEFT JOIN - чтение терпимо к удаленному мастеру или услуге
func (r *Repository) ListPendingDetails(ctx context.Context, userID *string) ([]*domain.AppointmentDetails, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"a.id",
		"COALESCE(b.name, '—')",
		"a.client_name",
		"COALESCE(s.name, '—')",
		"a.visit_date",
		"a.start_time",
		"COALESCE(s.price, 0)",
		"COALESCE(s.duration, 0)",
	).
		From("appointments a").
		LeftJoin("barbers b ON a.barber_id = b.id").
		LeftJoin("services s ON a.service_id = s.id").
		Where(squirrel.Eq{"a.status": domain.StatusPending}).
		OrderBy("a.visit_date ASC, a.start_time ASC")

	if userID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.user_id": *userID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		var d domain.AppointmentDetails
		if err := rows.Scan(
			&d.ID,
			&d.BarberName,
			&d.ClientName,
			&d.ServiceName,
			&d.Date,
			&d.Time,
			&d.Price,
			&d.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: ListPendingDetails - scan row: %v", ErrScanRow, err)
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPendingDetails - rows error: %v", ErrExecQuery, err)
	}

	return details, nil
}

// UpdateStatus переводит ожидающую запись в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись из активной таблицы
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
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
		return ErrAppointmentNotFound
	}

	return nil
}

// InsertArchive вставляет запись в архив с меткой времени переноса.
// Архивная копия сохраняет исходный id и статус
func (r *Repository) InsertArchive(ctx context.Context, appt *domain.Appointment, archivedAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("archive_appointments").
		Columns("id", "user_id", "client_name", "client_phone", "barber_id", "service_id", "visit_date", "start_time", "status", "archived_at").
		Values(appt.ID, appt.UserID, appt.ClientName, appt.ClientPhone, appt.BarberID, appt.ServiceID, appt.Date, appt.Time, appt.Status, archivedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertArchive - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertArchive - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountByStatus считает записи в указанном статусе
func (r *Repository) CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DistinctUserIDs получает всех пользователей, когда-либо оформлявших запись.
// Используется для рассылки
func (r *Repository) DistinctUserIDs(ctx context.Context) ([]string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT user_id").
		From("appointments").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DistinctUserIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DistinctUserIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: DistinctUserIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DistinctUserIDs - rows error: %v", ErrExecQuery, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.BarberID,
		&appt.ServiceID,
		&appt.Date,
		&appt.Time,
		&appt.Status,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrExecQuery, err)
	}
	return appts, nil
}
