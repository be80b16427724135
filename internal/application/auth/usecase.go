package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
	"github.com/jhoicas/bikefactory/pkg/jwt"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// SessionConfig configuración del token de sesión y del hash de contraseñas.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	BcryptCost int
}

// AuthUseCase login, token de sesión y administración de usuarios.
type AuthUseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
	cfg      SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner ports.TxRunner, log *logger.Logger, cfg SessionConfig) *AuthUseCase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{txRunner: txRunner, log: log.Component("auth"), cfg: cfg}
}

// NormalizeUsername recorta espacios y normaliza a Unicode NFC para que "José" escrito
// con o sin carácter combinado sea el mismo usuario.
func NormalizeUsername(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Hasher devuelve la función de hash bcrypt con el coste indicado (siembra del catálogo).
func Hasher(cost int) func(password string) (string, error) {
	return func(password string) (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	}
}

// Login verifica usuario/contraseña y devuelve el principal de la sesión.
// Usuario desconocido y contraseña errónea devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (access.Principal, error) {
	username = NormalizeUsername(username)
	var user *entity.User
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().GetByUsername(username)
		return err
	})
	if err != nil {
		return access.Principal{}, err
	}
	if user == nil {
		uc.log.Warn().Str("user", username).Msg("login fallido")
		return access.Principal{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(password)); err != nil {
		uc.log.Warn().Str("user", username).Msg("login fallido")
		return access.Principal{}, domain.ErrUnauthorized
	}
	uc.log.Info().Str("user", username).Str("role", string(user.Role)).Msg("login correcto")
	return access.Principal{Username: user.Username, Role: user.Role}, nil
}

// LoginWithToken Login + IssueToken.
func (uc *AuthUseCase) LoginWithToken(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	p, err := uc.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, err := uc.IssueToken(p)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.UserResponse{Username: p.Username, Role: string(p.Role)}}, nil
}

// IssueToken firma un token de sesión con username y rol.
func (uc *AuthUseCase) IssueToken(p access.Principal) (string, error) {
	return jwt.Generate(uc.cfg.Secret, p.Username, string(p.Role), uc.cfg.Issuer, uc.cfg.ExpMinutes)
}

// Authenticate valida el token y comprueba que el usuario siga existiendo con el mismo rol.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	username, role, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return access.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	var user *entity.User
	err = uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().GetByUsername(username)
		return err
	})
	if err != nil {
		return access.Principal{}, err
	}
	if user == nil || string(user.Role) != role {
		return access.Principal{}, fmt.Errorf("%w: sesión de %q ya no es válida", domain.ErrUnauthorized, username)
	}
	return access.Principal{Username: user.Username, Role: user.Role}, nil
}
