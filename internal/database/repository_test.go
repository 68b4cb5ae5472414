// internal/database/repository_test.go
package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"prestige-motors-api-server/internal/logger"
	"prestige-motors-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory StructuredStore used to exercise the
// repository's primary path, the latency race and the failure fallbacks
// without a MongoDB instance.
type memStore struct {
	mu       sync.Mutex
	vehicles map[string]models.Vehicle
	users    map[string]models.User

	readDelay time.Duration // simulated latency on Vehicles
	down      bool          // every operation fails
}

func newMemStore(seedVehicles []models.Vehicle, seedUsers []models.User) *memStore {
	s := &memStore{
		vehicles: make(map[string]models.Vehicle),
		users:    make(map[string]models.User),
	}
	for _, v := range seedVehicles {
		s.vehicles[v.ID] = v
	}
	for _, u := range seedUsers {
		s.users[u.Username] = u
	}
	return s
}

var errStoreDown = errors.New("structured store down")

func (s *memStore) Vehicles(_ context.Context) ([]models.Vehicle, error) {
	if s.readDelay > 0 {
		time.Sleep(s.readDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	out := make([]models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (s *memStore) VehicleByID(_ context.Context, id string) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	v, ok := s.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (s *memStore) SaveVehicle(_ context.Context, v models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	s.vehicles[v.ID] = v
	return nil
}

func (s *memStore) DeleteVehicle(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return false, errStoreDown
	}
	if _, ok := s.vehicles[id]; !ok {
		return false, nil
	}
	delete(s.vehicles, id)
	return true, nil
}

func (s *memStore) Users(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memStore) setDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// recordingNotifier captures notices for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *recordingNotifier) Notify(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, kind+": "+message)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return ""
	}
	return n.notices[len(n.notices)-1]
}

func newSnapshotStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "catalog.json"), logger.Nop())
}

// fallbackOnlyRepo simulates the structured store being unavailable for
// the whole session.
func fallbackOnlyRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(nil, newSnapshotStore(t), nil, logger.Nop(), time.Second)
}

func seededMemStore() *memStore {
	return newMemStore(DemoVehicles(time.Now().UnixMilli()), DemoUsers())
}

func demoVehiclePayload() models.Vehicle {
	return models.Vehicle{
		Make:         "Tesla",
		Model:        "Model 3",
		Year:         2024,
		Price:        45000,
		Mileage:      0,
		Color:        "Red",
		Transmission: models.TransmissionAutomatic,
		FuelType:     models.FuelElectric,
		Description:  "New",
		Features:     []string{},
		Images:       []string{},
		InStock:      true,
	}
}

func TestFallbackOnlySeedsAndLists(t *testing.T) {
	repo := fallbackOnlyRepo(t)

	vehicles := repo.ListVehicles(context.Background())
	require.Len(t, vehicles, 3)
	// Newest activity first.
	assert.Equal(t, "1", vehicles[0].ID)
	assert.Equal(t, "2", vehicles[1].ID)
	assert.Equal(t, "3", vehicles[2].ID)

	user := repo.Authenticate(context.Background(), "admin", "admin123")
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin)
}

func TestSeedingIsIdempotent(t *testing.T) {
	snapshot := newSnapshotStore(t)

	repo := NewRepository(nil, snapshot, nil, logger.Nop(), time.Second)
	require.Len(t, repo.ListVehicles(context.Background()), 3)

	// A second repository over the same snapshot must not reseed.
	repo2 := NewRepository(nil, snapshot, nil, logger.Nop(), time.Second)
	require.Len(t, repo2.ListVehicles(context.Background()), 3)
}

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	repo := fallbackOnlyRepo(t)

	inserted := repo.InsertVehicle(context.Background(), demoVehiclePayload())
	require.NotEmpty(t, inserted.ID)
	assert.Equal(t, inserted.CreatedAt, inserted.UpdatedAt)

	vehicles := repo.ListVehicles(context.Background())
	require.Len(t, vehicles, 4)
	assert.Equal(t, inserted.ID, vehicles[0].ID, "fresh insert should list first")
}

func TestInsertIDsAreUniqueUnderRapidInserts(t *testing.T) {
	repo := fallbackOnlyRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		v := repo.InsertVehicle(context.Background(), demoVehiclePayload())
		require.False(t, seen[v.ID], "duplicate id %s", v.ID)
		seen[v.ID] = true
	}
}

func TestUpdateMergesPatchAndBumpsUpdatedAt(t *testing.T) {
	repo := fallbackOnlyRepo(t)
	before := repo.GetVehicle(context.Background(), "2")
	require.NotNil(t, before)

	price := 54000.0
	inStock := false
	updated := repo.UpdateVehicle(context.Background(), "2", models.VehiclePatch{
		Price:   &price,
		InStock: &inStock,
	})
	require.NotNil(t, updated)

	assert.Equal(t, price, updated.Price)
	assert.False(t, updated.InStock)
	// Unpatched fields keep their values.
	assert.Equal(t, before.Make, updated.Make)
	assert.Equal(t, before.Mileage, updated.Mileage)
	// createdAt untouched, updatedAt strictly increases.
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	assert.Greater(t, updated.UpdatedAt, before.UpdatedAt)

	// The update moves the vehicle to the front of the listing.
	vehicles := repo.ListVehicles(context.Background())
	assert.Equal(t, "2", vehicles[0].ID)
}

func TestUpdateUnknownIDReturnsNil(t *testing.T) {
	repo := fallbackOnlyRepo(t)
	notify := &recordingNotifier{}
	repo.notify = notify

	updated := repo.UpdateVehicle(context.Background(), "does-not-exist", models.VehiclePatch{})
	assert.Nil(t, updated)
	assert.Equal(t, "error: Vehicle not found", notify.last())
}

func TestDeleteVehicleTwice(t *testing.T) {
	repo := fallbackOnlyRepo(t)

	assert.True(t, repo.DeleteVehicle(context.Background(), "1"))
	assert.False(t, repo.DeleteVehicle(context.Background(), "1"))
	require.Len(t, repo.ListVehicles(context.Background()), 2)
}

func TestListOrderingInvariant(t *testing.T) {
	repo := fallbackOnlyRepo(t)
	repo.InsertVehicle(context.Background(), demoVehiclePayload())
	desc := "still great"
	repo.UpdateVehicle(context.Background(), "3", models.VehiclePatch{Description: &desc})

	vehicles := repo.ListVehicles(context.Background())
	for i := 1; i < len(vehicles); i++ {
		a, b := vehicles[i-1], vehicles[i]
		ordered := a.UpdatedAt > b.UpdatedAt ||
			(a.UpdatedAt == b.UpdatedAt && a.CreatedAt >= b.CreatedAt)
		assert.True(t, ordered, "vehicles %s and %s out of order", a.ID, b.ID)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := fallbackOnlyRepo(t)
	ctx := context.Background()

	user := repo.Authenticate(ctx, "admin", "admin123")
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin)

	// Wrong password and unknown user are indistinguishable.
	assert.Nil(t, repo.Authenticate(ctx, "admin", "wrong"))
	assert.Nil(t, repo.Authenticate(ctx, "nouser", "x"))
}

func TestPrimaryWriteMirrorsIntoSnapshot(t *testing.T) {
	primary := seededMemStore()
	snapshot := newSnapshotStore(t)
	repo := NewRepository(primary, snapshot, nil, logger.Nop(), time.Second)

	inserted := repo.InsertVehicle(context.Background(), demoVehiclePayload())

	// The mirror task is fire-and-forget; give it a moment to settle.
	require.Eventually(t, func() bool {
		vehicles, _ := snapshot.Vehicles(context.Background())
		for _, v := range vehicles {
			if v.ID == inserted.ID {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "insert was not mirrored into the snapshot")
}

func TestListTimeoutServesSnapshot(t *testing.T) {
	primary := seededMemStore()
	snapshot := newSnapshotStore(t)
	repo := NewRepository(primary, snapshot, nil, logger.Nop(), 30*time.Millisecond)

	// First call initializes and mirrors the seeded state.
	require.Len(t, repo.ListVehicles(context.Background()), 3)

	// Add a vehicle behind the repository's back and slow the store down
	// past the latency budget: the stale snapshot must be served.
	extra := demoVehiclePayload()
	extra.ID = "999"
	extra.CreatedAt = time.Now().UnixMilli()
	extra.UpdatedAt = extra.CreatedAt
	require.NoError(t, primary.SaveVehicle(context.Background(), extra))
	primary.readDelay = 200 * time.Millisecond

	start := time.Now()
	vehicles := repo.ListVehicles(context.Background())
	assert.Less(t, time.Since(start), 150*time.Millisecond, "timeout did not bound the read")
	assert.Len(t, vehicles, 3, "expected the stale snapshot, not the slow read")

	// The losing read still completes and mirrors the newer state.
	require.Eventually(t, func() bool {
		mirrored, _ := snapshot.Vehicles(context.Background())
		return len(mirrored) == 4
	}, 2*time.Second, 10*time.Millisecond, "losing read did not mirror")
}

func TestEveryOperationSurvivesStoreFailure(t *testing.T) {
	primary := seededMemStore()
	snapshot := newSnapshotStore(t)
	repo := NewRepository(primary, snapshot, nil, logger.Nop(), time.Second)

	// Warm init while the store is healthy, then take it down.
	require.Len(t, repo.ListVehicles(context.Background()), 3)
	primary.setDown(true)

	ctx := context.Background()

	vehicles := repo.ListVehicles(ctx)
	require.Len(t, vehicles, 3)

	inserted := repo.InsertVehicle(ctx, demoVehiclePayload())
	require.NotEmpty(t, inserted.ID)
	assert.NotNil(t, repo.GetVehicle(ctx, inserted.ID))

	color := "Blue"
	updated := repo.UpdateVehicle(ctx, inserted.ID, models.VehiclePatch{Color: &color})
	require.NotNil(t, updated)
	assert.Equal(t, "Blue", updated.Color)

	assert.True(t, repo.DeleteVehicle(ctx, inserted.ID))

	user := repo.Authenticate(ctx, "admin", "admin123")
	require.NotNil(t, user)
}

func TestMutationNotices(t *testing.T) {
	repo := fallbackOnlyRepo(t)
	notify := &recordingNotifier{}
	repo.notify = notify
	ctx := context.Background()

	repo.InsertVehicle(ctx, demoVehiclePayload())
	assert.Equal(t, "success: Vehicle added successfully", notify.last())

	repo.DeleteVehicle(ctx, "1")
	assert.Equal(t, "success: Vehicle deleted successfully", notify.last())

	repo.DeleteVehicle(ctx, "1")
	assert.Equal(t, "error: Vehicle not found", notify.last())
}
