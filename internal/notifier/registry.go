package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/logger"
	"github.com/julianstephens/routineflow/internal/scheduler"
)

// Registry is the set of triggers currently scheduled with the notification
// backend. Cancel of an unknown id is not an error.
type Registry interface {
	List(ctx context.Context) ([]scheduler.AlarmSpec, error)
	Schedule(ctx context.Context, alarm scheduler.AlarmSpec) error
	Cancel(ctx context.Context, id string) error
}

// IDs returns the ids of every trigger in reg.
func IDs(ctx context.Context, reg Registry) ([]string, error) {
	specs, err := reg.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return ids, nil
}

// FileRegistry keeps triggers in a JSON file so they survive between runs.
type FileRegistry struct {
	mu   sync.Mutex
	path string
}

type registryFile struct {
	Triggers []scheduler.AlarmSpec `json:"triggers"`
}

func NewFileRegistry(configDir string) *FileRegistry {
	return &FileRegistry{path: filepath.Join(configDir, constants.TriggerRegistryFile)}
}

func (r *FileRegistry) Path() string {
	return r.path
}

func (r *FileRegistry) List(ctx context.Context) ([]scheduler.AlarmSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	triggers, err := r.read()
	if err != nil {
		return nil, err
	}
	out := make([]scheduler.AlarmSpec, 0, len(triggers))
	for _, id := range sortedIDs(triggers) {
		out = append(out, triggers[id])
	}
	return out, nil
}

// Schedule stores alarm, replacing any trigger with the same id.
func (r *FileRegistry) Schedule(ctx context.Context, alarm scheduler.AlarmSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if alarm.ID == "" {
		return errors.New("trigger id cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	triggers, err := r.read()
	if err != nil {
		return err
	}
	triggers[alarm.ID] = alarm
	return r.write(triggers)
}

func (r *FileRegistry) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	triggers, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := triggers[id]; !ok {
		return nil
	}
	delete(triggers, id)
	return r.write(triggers)
}

func (r *FileRegistry) read() (map[string]scheduler.AlarmSpec, error) {
	triggers := make(map[string]scheduler.AlarmSpec)
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return triggers, nil
		}
		return nil, fmt.Errorf("failed to read trigger registry: %w", err)
	}
	if len(data) == 0 {
		return triggers, nil
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse trigger registry %s: %w", r.path, err)
	}
	for _, t := range file.Triggers {
		triggers[t.ID] = t
	}
	return triggers, nil
}

func (r *FileRegistry) write(triggers map[string]scheduler.AlarmSpec) error {
	file := registryFile{Triggers: make([]scheduler.AlarmSpec, 0, len(triggers))}
	for _, id := range sortedIDs(triggers) {
		file.Triggers = append(file.Triggers, triggers[id])
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trigger registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write trigger registry: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace trigger registry: %w", err)
	}
	return nil
}

func sortedIDs(triggers map[string]scheduler.AlarmSpec) []string {
	ids := make([]string, 0, len(triggers))
	for id := range triggers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyResult counts what Apply changed.
type ApplyResult struct {
	Cancelled int `json:"cancelled"`
	Created   int `json:"created"`
}

// Apply executes plan against reg. Every cancellation runs before any
// creation so a recreated id ends up scheduled.
func Apply(ctx context.Context, reg Registry, plan scheduler.Plan) (ApplyResult, error) {
	var res ApplyResult
	for _, id := range plan.ToCancel {
		if err := reg.Cancel(ctx, id); err != nil {
			return res, fmt.Errorf("failed to cancel trigger %s: %w", id, err)
		}
		res.Cancelled++
	}
	for _, spec := range plan.ToCreate {
		if err := reg.Schedule(ctx, spec); err != nil {
			return res, fmt.Errorf("failed to schedule trigger %s: %w", spec.ID, err)
		}
		res.Created++
	}
	logger.Debug("Applied alarm plan", "cancelled", res.Cancelled, "created", res.Created)
	return res, nil
}

// Fire delivers every trigger in reg that is due at now. One-shot triggers
// are removed once delivered. A failed delivery is logged and skipped.
func Fire(ctx context.Context, reg Registry, d Deliverer, now time.Time) ([]scheduler.AlarmSpec, error) {
	specs, err := reg.List(ctx)
	if err != nil {
		return nil, err
	}

	var fired []scheduler.AlarmSpec
	for _, spec := range scheduler.DueAt(specs, now) {
		if err := d.Deliver(ctx, spec); err != nil {
			logger.Warn("Failed to deliver alarm", "id", spec.ID, "error", err)
			continue
		}
		fired = append(fired, spec)
		if spec.Kind == scheduler.KindOnce {
			if err := reg.Cancel(ctx, spec.ID); err != nil {
				return fired, fmt.Errorf("failed to clear fired trigger %s: %w", spec.ID, err)
			}
		}
	}
	return fired, nil
}
