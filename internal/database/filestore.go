// internal/database/filestore.go
package database

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"prestige-motors-api-server/internal/models"

	"go.uber.org/zap"
)

// snapshotVersion stamps the on-disk envelope so future format changes can
// be detected at load time.
const snapshotVersion = 1

// snapshot is the on-disk envelope: the whole catalog serialized as one
// JSON document, one array per collection.
type snapshot struct {
	Version  int              `json:"version"`
	Vehicles []models.Vehicle `json:"vehicles"`
	Users    []models.User    `json:"users"`
}

// FileStore is the synchronous fallback store: a flat JSON snapshot of
// both catalog collections. It never reports failures to callers; an
// unreadable or corrupt file behaves as an empty catalog and write errors
// are logged and swallowed. It has no indexes, ordering and filtering are
// the caller's job.
type FileStore struct {
	path string
	log  *zap.SugaredLogger
	mu   sync.RWMutex
}

func NewFileStore(path string, log *zap.SugaredLogger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (f *FileStore) load() snapshot {
	var snap snapshot
	data, err := os.ReadFile(f.path)
	if err != nil {
		return snapshot{Version: snapshotVersion}
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		f.log.Warnw("Snapshot file is corrupt, treating as empty", "path", f.path, "error", err)
		return snapshot{Version: snapshotVersion}
	}
	return snap
}

func (f *FileStore) save(snap snapshot) {
	snap.Version = snapshotVersion
	data, err := json.Marshal(snap)
	if err != nil {
		f.log.Warnw("Failed to encode snapshot", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		f.log.Warnw("Failed to create snapshot directory", "path", f.path, "error", err)
		return
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		f.log.Warnw("Failed to write snapshot", "path", f.path, "error", err)
	}
}

// WriteVehicles replaces the vehicle collection in the snapshot.
func (f *FileStore) WriteVehicles(vehicles []models.Vehicle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.load()
	snap.Vehicles = vehicles
	f.save(snap)
}

// WriteUsers replaces the user collection in the snapshot.
func (f *FileStore) WriteUsers(users []models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.load()
	snap.Users = users
	f.save(snap)
}

// The StructuredStore methods below let the repository treat the snapshot
// as a drop-in backend. They never return a non-nil error other than
// ErrNotFound.

func (f *FileStore) Vehicles(_ context.Context) ([]models.Vehicle, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	vehicles := f.load().Vehicles
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

func (f *FileStore) VehicleByID(_ context.Context, id string) (*models.Vehicle, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, v := range f.load().Vehicles {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (f *FileStore) SaveVehicle(_ context.Context, v models.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.load()
	replaced := false
	for i := range snap.Vehicles {
		if snap.Vehicles[i].ID == v.ID {
			snap.Vehicles[i] = v
			replaced = true
			break
		}
	}
	if !replaced {
		snap.Vehicles = append(snap.Vehicles, v)
	}
	f.save(snap)
	return nil
}

func (f *FileStore) DeleteVehicle(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.load()
	kept := snap.Vehicles[:0]
	for _, v := range snap.Vehicles {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(snap.Vehicles) {
		return false, nil
	}
	snap.Vehicles = kept
	f.save(snap)
	return true, nil
}

func (f *FileStore) Users(_ context.Context) ([]models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	users := f.load().Users
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (f *FileStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.load().Users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}
