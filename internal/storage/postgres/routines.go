package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/storage"
)

func (s *Store) AddRoutine(r models.Routine) error {
	_, err := s.db.Exec(`
		INSERT INTO routines (`+storage.RoutineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		storage.RoutineArgs(r)...)
	if err != nil {
		return fmt.Errorf("failed to add routine %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(`SELECT `+storage.RoutineColumns+` FROM routines WHERE id = $1`, id)
	r, err := storage.ScanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Routine{}, fmt.Errorf("routine %s: %w", id, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetAllRoutines() ([]models.Routine, error) {
	rows, err := s.db.Query(`SELECT ` + storage.RoutineColumns + ` FROM routines ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		r, err := storage.ScanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *Store) UpdateRoutine(r models.Routine) error {
	res, err := s.db.Exec(`
		UPDATE routines SET
			title = $1, description = $2, icon = $3, color = $4, category = $5, time_slot = $6,
			scheduled_time = $7, duration_minutes = $8, repeat_type = $9, repeat_interval_days = $10,
			frequency_value = $11, reminder_enabled = $12, reminder_minutes_before = $13, sort_order = $14,
			is_active = $15, is_from_template = $16, template_id = $17, created_at = $18
		WHERE id = $19`,
		storage.RoutineUpdateArgs(r)...)
	if err != nil {
		return fmt.Errorf("failed to update routine %s: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update routine %s: %w", r.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("routine %s: %w", r.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteRoutine relies on ON DELETE CASCADE for the routine's logs.
func (s *Store) DeleteRoutine(id string) error {
	res, err := s.db.Exec("DELETE FROM routines WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete routine %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete routine %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("routine %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ReorderRoutines(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE routines SET sort_order = $1 WHERE id = $2")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, id := range ids {
		res, err := stmt.Exec(i, id)
		if err != nil {
			return fmt.Errorf("failed to reorder routine %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to reorder routine %s: %w", id, err)
		}
		if n == 0 {
			return fmt.Errorf("routine %s: %w", id, storage.ErrNotFound)
		}
	}

	return tx.Commit()
}
