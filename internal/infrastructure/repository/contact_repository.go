package repository

import (
	"context"
	"database/sql"

	"github.com/rotemgl/jars_backend/internal/domain"
)

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, req domain.CreateContactRequest) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Name, req.Email, req.Phone, req.Message).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *contactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
