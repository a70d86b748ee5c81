package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/storage"
)

func (s *Store) AddLog(l models.RoutineLog) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO routine_logs (`+storage.LogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (routine_id, date_key) DO NOTHING`,
		storage.LogArgs(l)...)
	if err != nil {
		return false, fmt.Errorf("failed to add log for routine %s on %s: %w", l.RoutineID, l.DateKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) GetLog(routineID, dateKey string) (models.RoutineLog, error) {
	row := s.db.QueryRow(`SELECT `+storage.LogColumns+` FROM routine_logs WHERE routine_id = $1 AND date_key = $2`, routineID, dateKey)
	l, err := storage.ScanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoutineLog{}, fmt.Errorf("log for routine %s on %s: %w", routineID, dateKey, storage.ErrNotFound)
	}
	return l, err
}

func (s *Store) DeleteLog(routineID, dateKey string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM routine_logs WHERE routine_id = $1 AND date_key = $2", routineID, dateKey)
	if err != nil {
		return false, fmt.Errorf("failed to delete log for routine %s on %s: %w", routineID, dateKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetAllLogs() ([]models.RoutineLog, error) {
	return s.queryLogs(`SELECT ` + storage.LogColumns + ` FROM routine_logs ORDER BY date_key, completed_at`)
}

func (s *Store) GetLogsInRange(startDay, endDay string) ([]models.RoutineLog, error) {
	return s.queryLogs(`
		SELECT `+storage.LogColumns+` FROM routine_logs
		WHERE date_key >= $1 AND date_key <= $2
		ORDER BY date_key, completed_at`, startDay, endDay)
}

func (s *Store) queryLogs(query string, args ...interface{}) ([]models.RoutineLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.RoutineLog{}
	for rows.Next() {
		l, err := storage.ScanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
