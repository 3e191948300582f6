package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/juansean527/persona-service/internal/model"
)

var _ model.ReportStore = (*ReportRepository)(nil)

type ReportRepository struct {
	db *Connection
}

func NewReportRepository(db *Connection) *ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

// DomainCounts groups personas by the part of the email after the last '@'.
func (r *ReportRepository) DomainCounts(ctx context.Context) (map[string]int64, error) {
	query := `SELECT substring(email from '[^@]*$') AS domain, COUNT(*)
			  FROM personas GROUP BY 1`

	rows, err := r.db.SQL.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count domains: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			domain string
			n      int64
		)
		if err := rows.Scan(&domain, &n); err != nil {
			return nil, fmt.Errorf("failed to scan domain count: %w", err)
		}
		counts[domain] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domain counts: %w", err)
	}

	return counts, nil
}

// AgeStats computes whole-year ages as of today over personas with a birth date.
func (r *ReportRepository) AgeStats(ctx context.Context, today time.Time) (model.AgeStats, error) {
	query := `SELECT AVG(age)::float8, MIN(age), MAX(age) FROM (
				SELECT EXTRACT(YEAR FROM age($1::date, birth_date))::int AS age
				FROM personas WHERE birth_date IS NOT NULL
			  ) a`

	var (
		avg            sql.NullFloat64
		minAge, maxAge sql.NullInt64
	)
	err := r.db.SQL.QueryRowContext(ctx, query, today.Format(dateLayout)).Scan(&avg, &minAge, &maxAge)
	if err != nil {
		return model.AgeStats{}, fmt.Errorf("failed to compute age stats: %w", err)
	}

	var stats model.AgeStats
	if avg.Valid {
		v := avg.Float64
		stats.Average = &v
	}
	if minAge.Valid {
		v := int(minAge.Int64)
		stats.Min = &v
	}
	if maxAge.Valid {
		v := int(maxAge.Int64)
		stats.Max = &v
	}

	return stats, nil
}

// Search matches term case-insensitively as a substring of first name, last
// name or email. Ordered by id.
func (r *ReportRepository) Search(ctx context.Context, term string) ([]model.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM personas
			  WHERE first_name ILIKE $1 ESCAPE '\' OR last_name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'
			  ORDER BY id`

	rows, err := r.db.SQL.QueryContext(ctx, query, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search personas: %w", err)
	}
	defer rows.Close()

	personas := make([]model.Persona, 0)
	for rows.Next() {
		var p model.Persona
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
			&p.BirthDate, &p.IsActive, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search results: %w", err)
	}

	return personas, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term literally anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
