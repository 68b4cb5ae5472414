// internal/database/repository.go
package database

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"prestige-motors-api-server/internal/models"

	"go.uber.org/zap"
)

// Notifier receives the user-visible notices mutating operations emit
// ("Vehicle added successfully" and friends). Notices are advisory; they
// are not part of any operation's return contract.
type Notifier interface {
	Notify(kind, message string)
}

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

// Repository is the catalog's public persistence API. It orchestrates the
// structured store and the snapshot store: every operation prefers the
// structured store and falls back to the snapshot on any infrastructure
// failure, so callers only ever see values and domain-level "not found"
// outcomes, never storage errors. Successful structured-store writes are
// mirrored into the snapshot by a detached background task.
type Repository struct {
	primary  StructuredStore // nil when the structured store is unavailable
	fallback *FileStore
	notify   Notifier
	log      *zap.SugaredLogger

	// listTimeout bounds ListVehicles; when the structured read takes
	// longer, the snapshot contents are served instead.
	listTimeout time.Duration

	once sync.Once

	idMu   sync.Mutex
	lastID int64
}

// NewRepository wires a repository over the two backends. primary may be
// nil, in which case every operation runs on the snapshot store.
func NewRepository(primary StructuredStore, fallback *FileStore, notify Notifier, log *zap.SugaredLogger, listTimeout time.Duration) *Repository {
	if notify == nil {
		notify = nopNotifier{}
	}
	if listTimeout <= 0 {
		listTimeout = 10 * time.Second
	}
	return &Repository{
		primary:     primary,
		fallback:    fallback,
		notify:      notify,
		log:         log,
		listTimeout: listTimeout,
	}
}

// init runs once, on the first operation. With a structured store present
// it mirrors the (already seeded) collections into the snapshot so
// degraded reads have data from the start; without one it seeds the
// snapshot directly, if and only if the collections are empty.
func (r *Repository) init() {
	r.once.Do(func() {
		ctx := context.Background()
		if r.primary == nil {
			r.seedFallback()
			return
		}
		vehicles, err := r.primary.Vehicles(ctx)
		if err != nil {
			r.log.Warnw("Initial catalog mirror failed, seeding snapshot instead", "error", err)
			r.seedFallback()
			return
		}
		sortVehicles(vehicles)
		r.fallback.WriteVehicles(vehicles)

		users, err := r.primary.Users(ctx)
		if err != nil {
			r.log.Warnw("Initial user mirror failed", "error", err)
			return
		}
		r.fallback.WriteUsers(users)
	})
}

func (r *Repository) seedFallback() {
	ctx := context.Background()
	if vehicles, _ := r.fallback.Vehicles(ctx); len(vehicles) == 0 {
		r.fallback.WriteVehicles(DemoVehicles(time.Now().UnixMilli()))
	}
	if users, _ := r.fallback.Users(ctx); len(users) == 0 {
		r.fallback.WriteUsers(DemoUsers())
	}
}

// nextID derives a vehicle ID from the current epoch millisecond, bumping
// forward when two inserts land in the same millisecond so IDs stay
// unique. Returns the ID and the timestamp it encodes.
func (r *Repository) nextID() (string, int64) {
	r.idMu.Lock()
	defer r.idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= r.lastID {
		now = r.lastID + 1
	}
	r.lastID = now
	return strconv.FormatInt(now, 10), now
}

// sortVehicles orders a listing: most recently updated first, creation
// time as the tiebreak.
func sortVehicles(vehicles []models.Vehicle) {
	sort.SliceStable(vehicles, func(i, j int) bool {
		if vehicles[i].UpdatedAt != vehicles[j].UpdatedAt {
			return vehicles[i].UpdatedAt > vehicles[j].UpdatedAt
		}
		return vehicles[i].CreatedAt > vehicles[j].CreatedAt
	})
}

func (r *Repository) snapshotVehicles() []models.Vehicle {
	vehicles, _ := r.fallback.Vehicles(context.Background())
	sortVehicles(vehicles)
	return vehicles
}

// ListVehicles returns the full catalog, newest activity first. The
// structured read races a fixed timer: whichever finishes first supplies
// the result, and a read that loses the race keeps running so its mirror
// into the snapshot still lands. There is deliberately no cancellation of
// the slow read.
func (r *Repository) ListVehicles(ctx context.Context) []models.Vehicle {
	r.init()
	if r.primary == nil {
		return r.snapshotVehicles()
	}

	type listResult struct {
		vehicles []models.Vehicle
		err      error
	}
	resultCh := make(chan listResult, 1)

	go func() {
		// Background context: the read must survive the caller giving up.
		vehicles, err := r.primary.Vehicles(context.Background())
		if err != nil {
			resultCh <- listResult{err: err}
			return
		}
		sortVehicles(vehicles)
		r.fallback.WriteVehicles(vehicles)
		resultCh <- listResult{vehicles: vehicles}
	}()

	timer := time.NewTimer(r.listTimeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			r.log.Warnw("Catalog read failed, serving snapshot", "error", res.err)
			return r.snapshotVehicles()
		}
		return res.vehicles
	case <-timer.C:
		r.log.Warnf("Catalog read exceeded %s, serving snapshot", r.listTimeout)
		return r.snapshotVehicles()
	case <-ctx.Done():
		return r.snapshotVehicles()
	}
}

// GetVehicle looks a vehicle up by ID. Point lookups go through the same
// listing path, there is no separate indexed read at this layer.
func (r *Repository) GetVehicle(ctx context.Context, id string) *models.Vehicle {
	for _, v := range r.ListVehicles(ctx) {
		if v.ID == id {
			return &v
		}
	}
	return nil
}

// InsertVehicle assigns an ID and timestamps (createdAt == updatedAt) and
// persists the vehicle, falling back to the snapshot store if the
// structured insert fails.
func (r *Repository) InsertVehicle(ctx context.Context, v models.Vehicle) models.Vehicle {
	r.init()

	id, now := r.nextID()
	v.ID = id
	v.CreatedAt = now
	v.UpdatedAt = now

	if r.primary != nil {
		if err := r.primary.SaveVehicle(ctx, v); err != nil {
			r.log.Warnw("Structured insert failed, writing to snapshot", "id", v.ID, "error", err)
			r.fallback.SaveVehicle(ctx, v)
		} else {
			r.mirrorVehicles()
		}
	} else {
		r.fallback.SaveVehicle(ctx, v)
	}

	r.notify.Notify(NoticeSuccess, "Vehicle added successfully")
	return v
}

// UpdateVehicle merges the patch onto the stored record, refreshes
// updatedAt and persists the result. Returns nil when no vehicle with that
// ID exists in the active store.
func (r *Repository) UpdateVehicle(ctx context.Context, id string, patch models.VehiclePatch) *models.Vehicle {
	r.init()

	if r.primary != nil {
		existing, err := r.primary.VehicleByID(ctx, id)
		switch {
		case err == nil:
			patch.Apply(existing)
			existing.UpdatedAt = r.bumpUpdatedAt(existing.UpdatedAt)
			if err := r.primary.SaveVehicle(ctx, *existing); err != nil {
				r.log.Warnw("Structured update failed, writing to snapshot", "id", id, "error", err)
				r.fallback.SaveVehicle(ctx, *existing)
			} else {
				r.mirrorVehicles()
			}
			r.notify.Notify(NoticeSuccess, "Vehicle updated successfully")
			return existing
		case errors.Is(err, ErrNotFound):
			r.notify.Notify(NoticeError, "Vehicle not found")
			return nil
		default:
			r.log.Warnw("Structured read failed, updating snapshot", "id", id, "error", err)
		}
	}

	existing, err := r.fallback.VehicleByID(ctx, id)
	if err != nil {
		r.notify.Notify(NoticeError, "Vehicle not found")
		return nil
	}
	patch.Apply(existing)
	existing.UpdatedAt = r.bumpUpdatedAt(existing.UpdatedAt)
	r.fallback.SaveVehicle(ctx, *existing)

	r.notify.Notify(NoticeSuccess, "Vehicle updated successfully")
	return existing
}

// bumpUpdatedAt guarantees updatedAt strictly increases even when the
// update lands in the same millisecond as the previous write.
func (r *Repository) bumpUpdatedAt(prev int64) int64 {
	now := time.Now().UnixMilli()
	if now <= prev {
		now = prev + 1
	}
	return now
}

// DeleteVehicle removes a vehicle, reporting whether it existed.
func (r *Repository) DeleteVehicle(ctx context.Context, id string) bool {
	r.init()

	if r.primary != nil {
		deleted, err := r.primary.DeleteVehicle(ctx, id)
		if err != nil {
			r.log.Warnw("Structured delete failed, deleting from snapshot", "id", id, "error", err)
		} else {
			if !deleted {
				r.notify.Notify(NoticeError, "Vehicle not found")
				return false
			}
			r.mirrorVehicles()
			r.notify.Notify(NoticeSuccess, "Vehicle deleted successfully")
			return true
		}
	}

	deleted, _ := r.fallback.DeleteVehicle(ctx, id)
	if !deleted {
		r.notify.Notify(NoticeError, "Vehicle not found")
		return false
	}
	r.notify.Notify(NoticeSuccess, "Vehicle deleted successfully")
	return true
}

// Authenticate returns the credential record for the username when the
// stored password matches exactly. Unknown usernames and wrong passwords
// are indistinguishable: both return nil.
func (r *Repository) Authenticate(ctx context.Context, username, password string) *models.User {
	r.init()

	var user *models.User
	var err error
	if r.primary != nil {
		user, err = r.primary.UserByUsername(ctx, username)
		if err != nil && !errors.Is(err, ErrNotFound) {
			r.log.Warnw("Structured credential lookup failed, scanning snapshot", "error", err)
			user, err = r.fallback.UserByUsername(ctx, username)
		}
	} else {
		user, err = r.fallback.UserByUsername(ctx, username)
	}
	if err != nil || user == nil {
		return nil
	}
	if user.Password != password {
		return nil
	}
	return user
}

// mirrorVehicles re-reads the structured vehicle collection and replaces
// the snapshot's copy. Fire-and-forget: a failed mirror is logged, never
// surfaced, so writes cannot fail because of mirroring.
func (r *Repository) mirrorVehicles() {
	go func() {
		vehicles, err := r.primary.Vehicles(context.Background())
		if err != nil {
			r.log.Warnw("Snapshot mirror failed", "error", err)
			return
		}
		sortVehicles(vehicles)
		r.fallback.WriteVehicles(vehicles)
	}()
}
