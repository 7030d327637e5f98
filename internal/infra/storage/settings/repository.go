package settings

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

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// singletonID настройки компании - одна строка с фиксированным id
const singletonID = 1

// Repository репозиторий настроек компании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки компании
func (r *Repository) Get(ctx context.Context) (*domain.CompanySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_hours",
		"timezone",
		"slot_granularity_minutes",
		"min_booking_value",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("company_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CompanySettings
	var hours []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&hours,
		&s.Timezone,
		&s.SlotGranularityMinutes,
		&s.MinBookingValue,
		&s.MinBookingNoticeMinutes,
		&s.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(hours, &s.BusinessHours); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal business hours: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

// Upsert создает или обновляет единственную строку настроек
func (r *Repository) Upsert(ctx context.Context, s *domain.CompanySettings) (*domain.CompanySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := json.Marshal(s.BusinessHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert: %v", ErrMarshalHours, err)
	}

	query, args, err := psqlbuilder.Insert("company_settings").
		Columns(
			"id",
			"business_hours",
			"timezone",
			"slot_granularity_minutes",
			"min_booking_value",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			singletonID,
			hours,
			s.Timezone,
			s.SlotGranularityMinutes,
			s.MinBookingValue,
			s.MinBookingNoticeMinutes,
			s.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			business_hours = EXCLUDED.business_hours,
			timezone = EXCLUDED.timezone,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			min_booking_value = EXCLUDED.min_booking_value,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}
