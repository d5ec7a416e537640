package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"countryfx/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const countryColumns = `id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at`

// CountryRepository persists merged country records. Every method executes a
// single statement on a pooled connection; there is no cross-record
// transaction, so an interrupted full-replace cycle can leave the table empty
// or partially repopulated.
type CountryRepository struct {
	pool *pgxpool.Pool
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}

func scanCountry(row pgx.Row) (domain.Country, error) {
	var c domain.Country
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Capital,
		&c.Region,
		&c.Population,
		&c.CurrencyCode,
		&c.ExchangeRate,
		&c.EstimatedGDP,
		&c.FlagURL,
		&c.LastRefreshedAt,
	)
	return c, err
}

func (r *CountryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `delete from countries`); err != nil {
		return fmt.Errorf("failed to delete all countries: %w", err)
	}
	return nil
}

// Insert stores a new row. last_refreshed_at is set by the statement itself
// so it always reflects write time.
func (r *CountryRepository) Insert(ctx context.Context, country domain.Country) error {
	const q = `
        insert into countries (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
        values ($1, $2, $3, $4, $5, $6, $7, $8, now());
    `
	_, err := r.pool.Exec(ctx, q,
		country.Name,
		country.Capital,
		country.Region,
		country.Population,
		country.CurrencyCode,
		country.ExchangeRate,
		country.EstimatedGDP,
		country.FlagURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert country %q: %w", country.Name, err)
	}
	return nil
}

// FindByName looks a row up by case-insensitive name.
func (r *CountryRepository) FindByName(ctx context.Context, name string) (domain.Country, error) {
	const q = `select ` + countryColumns + ` from countries where lower(name) = lower($1);`

	country, err := scanCountry(r.pool.QueryRow(ctx, q, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Country{}, domain.ErrCountryNotFound
		}
		return domain.Country{}, fmt.Errorf("failed to select country %q: %w", name, err)
	}
	return country, nil
}

// Update overwrites the row matching name with the given record, bumping
// last_refreshed_at to write time.
func (r *CountryRepository) Update(ctx context.Context, name string, country domain.Country) error {
	const q = `
        update countries
        set name = $2, capital = $3, region = $4, population = $5, currency_code = $6,
            exchange_rate = $7, estimated_gdp = $8, flag_url = $9, last_refreshed_at = now()
        where lower(name) = lower($1);
    `
	tag, err := r.pool.Exec(ctx, q,
		name,
		country.Name,
		country.Capital,
		country.Region,
		country.Population,
		country.CurrencyCode,
		country.ExchangeRate,
		country.EstimatedGDP,
		country.FlagURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update country %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}

func (r *CountryRepository) DeleteByName(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `delete from countries where lower(name) = lower($1);`, name)
	if err != nil {
		return fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}

// SelectFiltered lists rows matching the optional equality filters, ordered
// by the allow-listed sort key. Unknown keys fall back to name ascending.
func (r *CountryRepository) SelectFiltered(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	var (
		whereClauses []string
		args         []any
	)

	if filter.Region != "" {
		args = append(args, filter.Region)
		whereClauses = append(whereClauses, fmt.Sprintf("region = $%d", len(args)))
	}
	if filter.CurrencyCode != "" {
		args = append(args, filter.CurrencyCode)
		whereClauses = append(whereClauses, fmt.Sprintf("currency_code = $%d", len(args)))
	}

	q := `select ` + countryColumns + ` from countries`
	if len(whereClauses) > 0 {
		q += ` where ` + strings.Join(whereClauses, " and ")
	}
	q += ` order by ` + sortClause(filter.Sort)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0, 64)
	for rows.Next() {
		country, scanErr := scanCountry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", scanErr)
		}
		countries = append(countries, country)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country rows: %w", err)
	}
	return countries, nil
}

// sortClause maps an external sort key to an order-by clause. Only
// allow-listed keys reach the SQL text; NULL GDP rows always sort last and
// name breaks ties so orderings stay stable.
func sortClause(sort string) string {
	switch sort {
	case "gdp_desc":
		return "estimated_gdp desc nulls last, name asc"
	case "gdp_asc":
		return "estimated_gdp asc nulls last, name asc"
	case "population_desc":
		return "population desc, name asc"
	default:
		return "name asc"
	}
}

func (r *CountryRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `select count(*) from countries;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}

// MaxLastRefreshedAt derives the most recent refresh time from stored data.
// Returns nil without error while the table is empty.
func (r *CountryRepository) MaxLastRefreshedAt(ctx context.Context) (*time.Time, error) {
	var maxTime *time.Time
	if err := r.pool.QueryRow(ctx, `select max(last_refreshed_at) from countries;`).Scan(&maxTime); err != nil {
		return nil, fmt.Errorf("failed to select max refresh time: %w", err)
	}
	return maxTime, nil
}
