package engine

import (
	"context"

	"homeroom/internal/models"
)

// Users returns every account known to the snapshot.
func (e *Engine) Users() []models.User {
	var out []models.User
	e.read(func(snap *models.Snapshot) {
		out = append([]models.User{}, snap.Users...)
	})
	return out
}

// AddUser creates an account via the backend (registration assigns the
// authoritative record) and then caches it. This is the one mutator that
// waits on the gateway: without the server-created account there is
// nothing meaningful to cache.
func (e *Engine) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	raw, err := e.gw.Call(ctx, "auth.register", user)
	if err != nil {
		return nil, err
	}
	created, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = &user
	}
	if err := e.update(func(snap *models.Snapshot) {
		snap.Users = append(snap.Users, *created)
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateUser applies the change locally and best-effort updates the backend.
func (e *Engine) UpdateUser(user models.User) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Users {
			if snap.Users[i].ID == user.ID {
				snap.Users[i] = user
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("users.update", user)
	return nil
}

// RemoveUser deletes the account locally and best-effort remotely.
func (e *Engine) RemoveUser(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Users = deleteByID(snap.Users, id, func(u models.User) string { return u.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("users.delete", map[string]string{"id": id})
	return nil
}

// deleteByID filters out the record whose key matches id.
func deleteByID[T any](records []T, id string, key func(T) string) []T {
	out := records[:0]
	for _, r := range records {
		if key(r) != id {
			out = append(out, r)
		}
	}
	return out
}
