package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// pinPattern is the accepted shape of a staff PIN: 3 to 5 alphanumerics.
// The admin password is free-form with a minimum length instead.
var pinPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,5}$`)

const adminSecretMinLen = 6

// AdminIdentidad is the reserved identity holding the admin password.
const AdminIdentidad = "admin"

// Verificador is the narrow credential-check contract the caja service
// depends on; CredencialService implements it.
type Verificador interface {
	// Verificar proves that secreto belongs to identidad. Format is checked
	// before any lookup so a malformed secret never touches the database.
	Verificar(ctx context.Context, identidad, secreto string) error
	// VerificarAdmin proves the admin password. Every failure mode collapses
	// to ErrAdminRequerido: callers gate privileged actions on it and must
	// not leak which part of the check failed.
	VerificarAdmin(ctx context.Context, secreto string) error
}

// BootstrapEntry seeds one credential at startup.
type BootstrapEntry struct {
	Identidad string
	Nombre    string
	Secreto   string
	Tipo      string // "pin" | "admin_password"
}

type CredencialService interface {
	Verificador
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Rotar(ctx context.Context, req dto.RotarSecretoRequest) error
	ResetPorAdmin(ctx context.Context, req dto.ResetSecretoRequest) error
	// Bootstrap creates the given credentials if absent. Idempotent: existing
	// identities are left untouched, so re-running the seeder is safe.
	Bootstrap(ctx context.Context, entries []BootstrapEntry) error
}

type credencialService struct {
	repo        repository.CredencialRepository
	jwtSecret   string
	jwtExpHours int
}

func NewCredencialService(repo repository.CredencialRepository, jwtSecret string, jwtExpHours int) CredencialService {
	return &credencialService{repo: repo, jwtSecret: jwtSecret, jwtExpHours: jwtExpHours}
}

// formatoValido checks the secret's shape for the given identity.
func formatoValido(identidad, secreto string) bool {
	if identidad == AdminIdentidad {
		return len(secreto) >= adminSecretMinLen
	}
	return pinPattern.MatchString(secreto)
}

func (s *credencialService) Verificar(ctx context.Context, identidad, secreto string) error {
	if identidad == "" || !formatoValido(identidad, secreto) {
		return ErrFormatoInvalido
	}

	cred, err := s.repo.FindByIdentidad(ctx, identidad)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCredencialesInvalidas
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.SecretoHash), []byte(secreto)) != nil {
		return ErrCredencialesInvalidas
	}
	return nil
}

func (s *credencialService) VerificarAdmin(ctx context.Context, secreto string) error {
	if err := s.Verificar(ctx, AdminIdentidad, secreto); err != nil {
		if errors.Is(err, ErrFormatoInvalido) || errors.Is(err, ErrCredencialesInvalidas) {
			return ErrAdminRequerido
		}
		return err
	}
	return nil
}

func (s *credencialService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.Verificar(ctx, req.Identidad, req.Secreto); err != nil {
		return nil, err
	}

	cred, err := s.repo.FindByIdentidad(ctx, req.Identidad)
	if err != nil {
		return nil, err
	}

	rol := "staff"
	if cred.Tipo == "admin_password" {
		rol = "admin"
	}

	expiresIn := time.Duration(s.jwtExpHours) * time.Hour
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    cred.Identidad,
		"nombre": cred.Nombre,
		"rol":    rol,
		"iat":    now.Unix(),
		"exp":    now.Add(expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(expiresIn.Seconds()),
		Identidad:   cred.Identidad,
		Nombre:      cred.Nombre,
		Rol:         rol,
	}, nil
}

func (s *credencialService) Rotar(ctx context.Context, req dto.RotarSecretoRequest) error {
	if err := s.Verificar(ctx, req.Identidad, req.SecretoActual); err != nil {
		return err
	}
	if !formatoValido(req.Identidad, req.NuevoSecreto) {
		return ErrFormatoInvalido
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NuevoSecreto), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdateSecreto(ctx, req.Identidad, string(hash))
}

func (s *credencialService) ResetPorAdmin(ctx context.Context, req dto.ResetSecretoRequest) error {
	if err := s.VerificarAdmin(ctx, req.Admin.Secreto); err != nil {
		return err
	}
	if !formatoValido(req.Identidad, req.NuevoSecreto) {
		return ErrFormatoInvalido
	}

	if _, err := s.repo.FindByIdentidad(ctx, req.Identidad); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NuevoSecreto), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdateSecreto(ctx, req.Identidad, string(hash))
}

func (s *credencialService) Bootstrap(ctx context.Context, entries []BootstrapEntry) error {
	for _, e := range entries {
		_, err := s.repo.FindByIdentidad(ctx, e.Identidad)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(e.Secreto), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		cred := &model.Credencial{
			Identidad:   e.Identidad,
			Nombre:      e.Nombre,
			SecretoHash: string(hash),
			Tipo:        e.Tipo,
		}
		if err := s.repo.Create(ctx, cred); err != nil {
			return err
		}
		log.Info().Str("identidad", e.Identidad).Msg("credencial creada")
	}
	return nil
}
