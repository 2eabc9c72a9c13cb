package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portfolio/backend/internal/model"
)

// MessageRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type MessageRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
	UpdateFlags(ctx context.Context, id string, upd model.MessageUpdate) (*model.ContactMessage, error)
}

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

const messageSelectCols = `id, name, email, subject, message, read, replied, created_at`

func scanMessage(scan func(...any) error) (*model.ContactMessage, error) {
	m := &model.ContactMessage{}
	return m, scan(
		&m.ID, &m.Name, &m.Email, &m.Subject,
		&m.Message, &m.Read, &m.Replied, &m.CreatedAt,
	)
}

// Save inserts a new contact_messages row. The caller assigns ID and CreatedAt.
func (r *PgMessageRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, read, replied, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Read, msg.Replied, msg.CreatedAt,
	)
	return err
}

// List returns all contact messages, newest first.
func (r *PgMessageRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageSelectCols+`
		 FROM contact_messages
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateFlags applies the non-nil fields of upd to the message with the given id
// in a single UPDATE, so concurrent flag updates to the same row cannot lose each
// other. Returns ErrNotFound if no row matches.
func (r *PgMessageRepository) UpdateFlags(ctx context.Context, id string, upd model.MessageUpdate) (*model.ContactMessage, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE contact_messages
		 SET read = COALESCE($2, read), replied = COALESCE($3, replied)
		 WHERE id = $1
		 RETURNING `+messageSelectCols,
		id, upd.Read, upd.Replied)
	m, err := scanMessage(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
