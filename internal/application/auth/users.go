package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

// CreateUser crea un usuario: hashea password con bcrypt y persiste.
func (uc *AuthUseCase) CreateUser(ctx context.Context, p access.Principal, username, password string, role entity.Role) (*dto.UserResponse, error) {
	if err := access.Require(p, access.ActionManageUsers); err != nil {
		uc.log.Warn().Str("user", p.Username).Msg("alta de usuario denegada")
		return nil, err
	}
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidArgument)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidArgument, role)
	}
	cred, err := Hasher(uc.cfg.BcryptCost)(password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, Credential: cred, Role: role}
	if err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		return tx.Users().Create(user)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("created", username).Str("role", string(role)).Msg("usuario creado")
	return toUserResponse(user), nil
}

// DeleteUser elimina un usuario. El administrador integrado no se puede eliminar.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, p access.Principal, username string) error {
	if err := access.Require(p, access.ActionManageUsers); err != nil {
		uc.log.Warn().Str("user", p.Username).Msg("baja de usuario denegada")
		return err
	}
	username = NormalizeUsername(username)
	if username == entity.BuiltinAdmin {
		return fmt.Errorf("%w: el usuario %s no se puede eliminar", domain.ErrInvalidState, username)
	}
	if err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		return tx.Users().Delete(username)
	}); err != nil {
		return err
	}
	uc.log.Info().Str("user", p.Username).Str("deleted", username).Msg("usuario eliminado")
	return nil
}

// ListUsers usuarios ordenados por username, sin credenciales.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var users []entity.User
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		users, err = tx.Users().List()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = *toUserResponse(&users[i])
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{Username: u.Username, Role: string(u.Role)}
}
