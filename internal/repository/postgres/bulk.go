package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/juansean527/persona-service/internal/model"
)

var _ model.BulkStore = (*BulkRepository)(nil)

const dateLayout = "2006-01-02"

var stagingColumns = []string{"first_name", "last_name", "email", "phone", "birth_date", "is_active", "notes"}

// BulkRepository performs whole-table writes over database/sql so it can use
// the COPY protocol of lib/pq.
type BulkRepository struct {
	db *Connection
}

func NewBulkRepository(db *Connection) *BulkRepository {
	return &BulkRepository{
		db: db,
	}
}

// InsertBatch streams records into a temporary staging table with COPY and
// moves them into personas in a single statement. Rows whose email already
// exists are skipped.
func (r *BulkRepository) InsertBatch(ctx context.Context, records []model.CreatePersonaParams) (created int64, err error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `CREATE TEMP TABLE personas_staging (
		first_name text, last_name text, email text, phone text,
		birth_date date, is_active boolean, notes text
	) ON COMMIT DROP`)
	if err != nil {
		return 0, fmt.Errorf("failed to create staging table: %w", err)
	}

	if err = copyRecords(ctx, tx, records); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO personas (first_name, last_name, email, phone, birth_date, is_active, notes)
		SELECT first_name, last_name, email, phone, birth_date, is_active, notes FROM personas_staging
		ON CONFLICT (email) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to insert staged personas: %w", err)
	}

	created, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}

	return created, nil
}

func copyRecords(ctx context.Context, tx *sql.Tx, records []model.CreatePersonaParams) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("personas_staging", stagingColumns...))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.FirstName, rec.LastName, rec.Email, nullString(rec.Phone),
			nullDate(rec.BirthDate), rec.IsActive, nullString(rec.Notes),
		)
		if err != nil {
			return fmt.Errorf("failed to copy persona: %w", err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush copy: %w", err)
	}

	return nil
}

// DeleteAll removes every persona in one transaction. With restartIDs the id
// sequence is reset so the next insert receives id 1.
func (r *BulkRepository) DeleteAll(ctx context.Context, restartIDs bool) (deleted int64, err error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM personas`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete personas: %w", err)
	}
	deleted, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read deleted rows: %w", err)
	}

	if restartIDs {
		_, err = tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('personas', 'id'), 1, false)`)
		if err != nil {
			return 0, fmt.Errorf("failed to restart id sequence: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reset: %w", err)
	}

	return deleted, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}
