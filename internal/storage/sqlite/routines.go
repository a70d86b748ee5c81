package sqlite

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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		storage.RoutineArgs(r)...)
	if err != nil {
		return fmt.Errorf("failed to add routine %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(`SELECT `+storage.RoutineColumns+` FROM routines WHERE id = ?`, id)
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
			title = ?, description = ?, icon = ?, color = ?, category = ?, time_slot = ?,
			scheduled_time = ?, duration_minutes = ?, repeat_type = ?, repeat_interval_days = ?,
			frequency_value = ?, reminder_enabled = ?, reminder_minutes_before = ?, sort_order = ?,
			is_active = ?, is_from_template = ?, template_id = ?, created_at = ?
		WHERE id = ?`,
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

func (s *Store) DeleteRoutine(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM routine_logs WHERE routine_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete logs for routine %s: %w", id, err)
	}
	res, err := tx.Exec("DELETE FROM routines WHERE id = ?", id)
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

	return tx.Commit()
}

func (s *Store) ReorderRoutines(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE routines SET sort_order = ? WHERE id = ?")
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
