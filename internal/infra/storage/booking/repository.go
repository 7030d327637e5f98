package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"address",
	"booking_date",
	"start_time",
	"end_time",
	"total_duration_minutes",
	"total_price",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками состава
// Если в контексте передана активная транзакция (через context.Value), использует её -
// обе вставки выполняются атомарно, бронирование без строк в БД не появляется
//
// При создании с проверкой доступности слота вызывается только внутри
// сериализуемой транзакции (см. usecase create_booking)
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"address",
			"booking_date",
			"start_time",
			"end_time",
			"total_duration_minutes",
			"total_price",
			"status",
			"notes",
		).
		Values(
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.Address,
			b.BookingDate,
			b.StartTime,
			b.EndTime,
			b.TotalDurationMinutes,
			b.TotalPrice,
			b.Status,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	for i := range b.Items {
		if err := r.createItem(ctx, executor, b.ID, &b.Items[i]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// createItem вставляет одну строку бронирования
func (r *Repository) createItem(ctx context.Context, executor DBExecutor, bookingID int64, item *domain.BookingItem) error {
	selection, err := json.Marshal(item.Selection)
	if err != nil {
		return fmt.Errorf("%w: createItem: %v", ErrMarshalSelection, err)
	}

	query, args, err := psqlbuilder.Insert("booking_items").
		Columns(
			"booking_id",
			"service_id",
			"service_name",
			"pricing_type",
			"quantity",
			"selection",
			"subtotal",
			"discount",
			"final_price",
		).
		Values(
			bookingID,
			item.ServiceID,
			item.ServiceName,
			item.PricingType,
			item.Quantity,
			selection,
			item.Breakdown.Subtotal,
			item.Breakdown.Discount,
			item.Breakdown.FinalPrice,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("%w: createItem - execute insert: %v", ErrExecQuery, err)
	}

	item.BookingID = bookingID
	item.CalculatedPrice = item.Breakdown.FinalPrice
	return nil
}

// GetByID получает бронирование по ID вместе со строками состава
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, executor, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	b.Items = items[b.ID]

	return b, nil
}

// List получает бронирования с гибкой фильтрацией по периоду и статусу
// Если не указан конкретный статус и не запрошены неактивные,
// отмененные и завершенные бронирования исключаются
//
// Внутри транзакции выборка на конкретную дату блокирует строки (FOR UPDATE) -
// так проверка доступности при создании бронирования не гоняется с параллельной записью
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		// На конкретную дату - в хронологическом порядке
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if len(bookings) == 0 {
		return bookings, nil
	}

	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}

	items, err := r.loadItems(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		b.Items = items[b.ID]
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
// Строка сохраняется для истории, слот освобождается для движка доступности
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// loadItems загружает строки состава для набора бронирований одним запросом
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, bookingIDs []int64) (map[int64][]domain.BookingItem, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"service_id",
		"service_name",
		"pricing_type",
		"quantity",
		"selection",
		"subtotal",
		"discount",
		"final_price",
	).
		From("booking_items").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.BookingItem)
	for rows.Next() {
		var item domain.BookingItem
		var selection []byte

		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ServiceID,
			&item.ServiceName,
			&item.PricingType,
			&item.Quantity,
			&selection,
			&item.Breakdown.Subtotal,
			&item.Breakdown.Discount,
			&item.Breakdown.FinalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan row: %v", ErrScanRow, err)
		}

		if len(selection) > 0 {
			if err := json.Unmarshal(selection, &item.Selection); err != nil {
				return nil, fmt.Errorf("%w: loadItems - unmarshal selection: %v", ErrScanRow, err)
			}
		}

		item.CalculatedPrice = item.Breakdown.FinalPrice
		result[item.BookingID] = append(result[item.BookingID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.Address,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.TotalDurationMinutes,
		&b.TotalPrice,
		&b.Status,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanBooking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.CustomerName,
			&b.CustomerEmail,
			&b.CustomerPhone,
			&b.Address,
			&b.BookingDate,
			&b.StartTime,
			&b.EndTime,
			&b.TotalDurationMinutes,
			&b.TotalPrice,
			&b.Status,
			&b.Notes,
			&b.CancellationReason,
			&b.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
