package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// SQLiteAliasRepo implements AliasRepo using a SQLite database.
type SQLiteAliasRepo struct {
	db db.DBTX
}

// NewSQLiteAliasRepo creates a new SQLiteAliasRepo.
func NewSQLiteAliasRepo(conn db.DBTX) *SQLiteAliasRepo {
	return &SQLiteAliasRepo{db: conn}
}

func (r *SQLiteAliasRepo) Add(ctx context.Context, ticketID, alias string) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO aliases (tid, alias) VALUES (?, ?)`, ticketID, alias); err != nil {
		return fmt.Errorf("inserting alias: %w", err)
	}
	return nil
}

func (r *SQLiteAliasRepo) Remove(ctx context.Context, alias string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM aliases WHERE alias = ?`, alias)
	if err != nil {
		return false, fmt.Errorf("deleting alias: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting alias: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteAliasRepo) Load(ctx context.Context, alias string) (string, error) {
	// Duplicates are tolerated; the first registered mapping wins.
	var ticketID string
	err := r.db.QueryRowContext(ctx, `SELECT tid FROM aliases WHERE alias = ? ORDER BY rowid LIMIT 1`, alias).Scan(&ticketID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading alias: %w", err)
	}
	return ticketID, nil
}

func (r *SQLiteAliasRepo) List(ctx context.Context, ticketID string) ([]domain.Alias, error) {
	query := `SELECT tid, alias FROM aliases`
	args := []any{}
	if ticketID != "" {
		query += ` WHERE tid = ?`
		args = append(args, ticketID)
	}
	query += ` ORDER BY alias`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing aliases: %w", err)
	}
	defer rows.Close()

	var aliases []domain.Alias
	for rows.Next() {
		var a domain.Alias
		if err := rows.Scan(&a.TicketID, &a.Alias); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aliases: %w", err)
	}
	return aliases, nil
}
