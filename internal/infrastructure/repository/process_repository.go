package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rotemgl/jars_backend/internal/domain"
)

type processRepository struct {
	db *sql.DB
}

func NewProcessRepository(db *sql.DB) domain.ProcessRepository {
	return &processRepository{db: db}
}

func (r *processRepository) GetAll(ctx context.Context) ([]domain.Process, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, COALESCE(further_reading_links, '[]'), created_at, updated_at
		FROM processes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProcesses(rows)
}

func (r *processRepository) GetByID(ctx context.Context, id string) (*domain.Process, error) {
	var p domain.Process
	var links []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, COALESCE(further_reading_links, '[]'), created_at, updated_at
		FROM processes
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &links, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("process not found: %s", id)
		}
		return nil, err
	}
	if err := json.Unmarshal(links, &p.FurtherReadingLinks); err != nil {
		return nil, fmt.Errorf("bad further_reading_links for %s: %w", id, err)
	}
	return &p, nil
}

func (r *processRepository) Create(ctx context.Context, process *domain.Process) error {
	links, err := json.Marshal(process.FurtherReadingLinks)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO processes (id, name, description, further_reading_links)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, process.ID, process.Name, process.Description, links).Scan(&process.CreatedAt, &process.UpdatedAt)
}

func (r *processRepository) Update(ctx context.Context, process *domain.Process) error {
	links, err := json.Marshal(process.FurtherReadingLinks)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE processes
		SET name = $1, description = $2, further_reading_links = $3, updated_at = NOW()
		WHERE id = $4
	`, process.Name, process.Description, links, process.ID)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("process not found: %s", process.ID)
	}
	return nil
}

func (r *processRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM processes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("process not found: %s", id)
	}
	return nil
}

func scanProcesses(rows *sql.Rows) ([]domain.Process, error) {
	var processes []domain.Process
	for rows.Next() {
		var p domain.Process
		var links []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &links, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(links, &p.FurtherReadingLinks); err != nil {
			return nil, fmt.Errorf("bad further_reading_links for %s: %w", p.ID, err)
		}
		processes = append(processes, p)
	}
	return processes, rows.Err()
}
