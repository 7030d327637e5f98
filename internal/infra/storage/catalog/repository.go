package catalog

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

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"pricing_type",
	"base_price",
	"duration_minutes",
	"active",
	"area_config",
	"addons_config",
	"quote_config",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
// Конфигурация ценообразования хранится в jsonb-колонках:
// заполнена ровно та, которая соответствует pricing_type
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	areaCfg, addonsCfg, quoteCfg, err := marshalConfigs(svc)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"name",
			"description",
			"pricing_type",
			"base_price",
			"duration_minutes",
			"active",
			"area_config",
			"addons_config",
			"quote_config",
		).
		Values(
			svc.Name,
			svc.Description,
			svc.PricingType,
			svc.BasePrice,
			svc.DurationMinutes,
			svc.Active,
			areaCfg,
			addonsCfg,
			quoteCfg,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time
	return svc, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}

	return services[0], nil
}

// List получает список услуг
// При activeOnly = true возвращаются только активные услуги (публичный каталог)
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
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

	return r.scanServices(rows)
}

// Update обновляет услугу целиком
func (r *Repository) Update(ctx context.Context, svc *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	areaCfg, addonsCfg, quoteCfg, err := marshalConfigs(svc)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("services").
		Set("name", svc.Name).
		Set("description", svc.Description).
		Set("pricing_type", svc.PricingType).
		Set("base_price", svc.BasePrice).
		Set("duration_minutes", svc.DurationMinutes).
		Set("active", svc.Active).
		Set("area_config", areaCfg).
		Set("addons_config", addonsCfg).
		Set("quote_config", quoteCfg).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": svc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// Delete удаляет услугу
// История бронирований не страдает - данные услуги в booking_items денормализованы
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// marshalConfigs сериализует конфигурации ценообразования в jsonb
// Незаполненные конфигурации пишутся как NULL
func marshalConfigs(svc *domain.Service) (areaCfg, addonsCfg, quoteCfg []byte, err error) {
	if svc.AreaBased != nil {
		if areaCfg, err = json.Marshal(svc.AreaBased); err != nil {
			return nil, nil, nil, fmt.Errorf("%w: area config: %v", ErrMarshalConfig, err)
		}
	}
	if svc.Addons != nil {
		if addonsCfg, err = json.Marshal(svc.Addons); err != nil {
			return nil, nil, nil, fmt.Errorf("%w: addons config: %v", ErrMarshalConfig, err)
		}
	}
	if svc.CustomQuote != nil {
		if quoteCfg, err = json.Marshal(svc.CustomQuote); err != nil {
			return nil, nil, nil, fmt.Errorf("%w: quote config: %v", ErrMarshalConfig, err)
		}
	}
	return areaCfg, addonsCfg, quoteCfg, nil
}

// scanServices сканирует результаты запроса в слайс услуг
func (r *Repository) scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var svc domain.Service
		var areaCfg, addonsCfg, quoteCfg []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.PricingType,
			&svc.BasePrice,
			&svc.DurationMinutes,
			&svc.Active,
			&areaCfg,
			&addonsCfg,
			&quoteCfg,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}

		if len(areaCfg) > 0 {
			svc.AreaBased = &domain.AreaBasedConfig{}
			if err := json.Unmarshal(areaCfg, svc.AreaBased); err != nil {
				return nil, fmt.Errorf("%w: scanServices - unmarshal area config: %v", ErrScanRow, err)
			}
		}
		if len(addonsCfg) > 0 {
			svc.Addons = &domain.AddonsConfig{}
			if err := json.Unmarshal(addonsCfg, svc.Addons); err != nil {
				return nil, fmt.Errorf("%w: scanServices - unmarshal addons config: %v", ErrScanRow, err)
			}
		}
		if len(quoteCfg) > 0 {
			svc.CustomQuote = &domain.CustomQuoteConfig{}
			if err := json.Unmarshal(quoteCfg, svc.CustomQuote); err != nil {
				return nil, fmt.Errorf("%w: scanServices - unmarshal quote config: %v", ErrScanRow, err)
			}
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
