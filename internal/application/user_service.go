package application

import (
	"context"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

// GetProfile returns the user named by a session token's id claim.
func (s *Service) GetProfile(ctx context.Context, userID int64) (entity.PublicUser, error) {
	return s.GetUser(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id int64) (entity.PublicUser, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return entity.PublicUser{}, storageError("application.GetUser", err)
	}
	return u.Public(), nil
}

// ListUsers returns all users, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]entity.PublicUser, error) {
	users, err := s.Store.Users().List(ctx)
	if err != nil {
		return nil, storageError("application.ListUsers", err)
	}
	out := make([]entity.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// UpdateUser applies the set fields of patch. Email, password and
// verification state are not reachable from here.
func (s *Service) UpdateUser(ctx context.Context, id int64, patch entity.UserPatch) (entity.PublicUser, error) {
	const op = "application.UpdateUser"

	var u *entity.User
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		u, err = tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !patch.Apply(u) {
			return nil
		}
		return tx.Users().Update(ctx, u)
	})
	if err != nil {
		return entity.PublicUser{}, storageError(op, err)
	}
	return u.Public(), nil
}

// DeleteUser removes the user; its codes go with it.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.Store.Users().Delete(ctx, id); err != nil {
		return storageError("application.DeleteUser", err)
	}
	s.Logger.WithField("user_id", id).Info("user deleted")
	return nil
}
