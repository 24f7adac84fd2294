package publish

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// PostgresExporter upserts RFQs into a table keyed by id. Tags are stored as
// text[] and specifications plus the full record as jsonb.
type PostgresExporter struct {
	db    *sql.DB
	table string
}

func NewPostgresExporter(db *sql.DB, table string) *PostgresExporter {
	if table == "" {
		table = "rfq_records"
	}
	return &PostgresExporter{db: db, table: table}
}

func (p *PostgresExporter) Name() string { return "postgres" }

// EnsureTable creates the table when it does not exist.
func (p *PostgresExporter) EnsureTable(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	category TEXT NOT NULL,
	subcategory TEXT NOT NULL,
	title TEXT NOT NULL,
	budget TEXT NOT NULL,
	urgency TEXT NOT NULL,
	status TEXT NOT NULL,
	created_date DATE NOT NULL,
	tags TEXT[] NOT NULL,
	specifications JSONB NOT NULL,
	payload JSONB NOT NULL
)`, pq.QuoteIdentifier(p.table)))
	if err != nil {
		return fmt.Errorf("create table %s: %w", p.table, err)
	}
	return nil
}

func (p *PostgresExporter) upsertSQL() string {
	return fmt.Sprintf(`INSERT INTO %s
	(id, run_id, category, subcategory, title, budget, urgency, status, created_date, tags, specifications, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
	run_id = EXCLUDED.run_id,
	category = EXCLUDED.category,
	subcategory = EXCLUDED.subcategory,
	title = EXCLUDED.title,
	budget = EXCLUDED.budget,
	urgency = EXCLUDED.urgency,
	status = EXCLUDED.status,
	created_date = EXCLUDED.created_date,
	tags = EXCLUDED.tags,
	specifications = EXCLUDED.specifications,
	payload = EXCLUDED.payload`, pq.QuoteIdentifier(p.table))
}

// Publish writes every RFQ in one transaction.
func (p *PostgresExporter) Publish(ctx context.Context, snap Snapshot) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, p.upsertSQL())
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range snap.RFQs {
		specs, err := json.Marshal(r.Specifications)
		if err != nil {
			return fmt.Errorf("marshal specifications %s: %w", r.ID, err)
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal rfq %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, snap.RunID, r.Category, r.Subcategory, r.Title, r.Budget,
			string(r.Urgency), string(r.Status), r.CreatedDate,
			pq.Array(r.Tags), specs, payload,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
