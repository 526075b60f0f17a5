package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/paging"
)

const noteColumns = `id, owner, title, content, tags, created_at, updated_at`

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindOwned(ctx context.Context, id int64, owner string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND owner = $2`

	note, err := scanNote(r.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) ListOwned(ctx context.Context, owner string, offset, limit int) ([]*models.Note, int64, error) {
	countQuery := `SELECT COUNT(*) FROM notes WHERE owner = $1`
	pageQuery := `SELECT ` + noteColumns + ` FROM notes WHERE owner = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`

	return r.page(ctx, countQuery, pageQuery, []any{owner}, limit, offset)
}

// SearchOwned matches query literally and case-insensitively against title
// or content.
func (r *PostgresRepository) SearchOwned(ctx context.Context, owner, query string, offset, limit int) ([]*models.Note, int64, error) {
	filter := `owner = $1 AND (title ILIKE $2 OR content ILIKE $2)`
	countQuery := `SELECT COUNT(*) FROM notes WHERE ` + filter
	pageQuery := `SELECT ` + noteColumns + ` FROM notes WHERE ` + filter + ` ORDER BY id ASC LIMIT $3 OFFSET $4`

	pattern := "%" + paging.EscapeLike(query) + "%"
	return r.page(ctx, countQuery, pageQuery, []any{owner, pattern}, limit, offset)
}

// page runs the count and the page read against one snapshot so that the
// total matches the items.
func (r *PostgresRepository) page(ctx context.Context, countQuery, pageQuery string, args []any, limit, offset int) ([]*models.Note, int64, error) {
	var (
		total int64
		items []*models.Note
	)

	read := func(ctx context.Context, tx dbx.DBTX) error {
		if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, pageQuery, append(args, limit, offset)...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			note, err := scanNote(rows)
			if err != nil {
				return err
			}
			items = append(items, note)
		}
		return rows.Err()
	}

	var err error
	if db, ok := r.db.(*sql.DB); ok {
		err = dbx.WithTx(ctx, db, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, read)
	} else {
		err = read(ctx, r.db)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return items, total, nil
}

func (r *PostgresRepository) Save(ctx context.Context, note *models.Note) (*models.Note, error) {
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return nil, err
	}

	if note.ID == 0 {
		query :=
			`INSERT INTO notes (owner, title, content, tags, created_at, updated_at)
			 VALUES ($1, $2, $3, $4::jsonb, $5, $6)
			 RETURNING id
			 `
		err = r.db.QueryRowContext(ctx, query,
			note.Owner, note.Title, note.Content, tags, note.CreatedAt, note.UpdatedAt).Scan(&note.ID)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		return note, nil
	}

	query :=
		`UPDATE notes SET title = $1, content = $2, tags = $3::jsonb, updated_at = $4
		 WHERE id = $5 AND owner = $6
		 RETURNING created_at
		 `
	err = r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, tags, note.UpdatedAt, note.ID, note.Owner).Scan(&note.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, note *models.Note) error {
	query := `DELETE FROM notes WHERE id = $1 AND owner = $2`

	res, err := r.db.ExecContext(ctx, query, note.ID, note.Owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note models.Note
		tags []byte
	)
	if err := row.Scan(&note.ID, &note.Owner, &note.Title, &note.Content, &tags,
		&note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &note.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of note %d: %w", note.ID, err)
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	return &note, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}
