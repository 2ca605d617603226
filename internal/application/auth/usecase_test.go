package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/auth"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/ledger-api/pkg/jwt"
)

const (
	companyID = "11111111-1111-1111-1111-111111111111"
	secret    = "test-secret"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{ID: companyID, Name: "Acme", Status: "active"}))
	uc := auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{Secret: secret, TTL: time.Hour, Issuer: "ledger-api-test"})
	return uc, store
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Contador@Acme.in", Password: "s3cret-pass", CompanyID: companyID, Role: entity.RoleAccountant})
	require.NoError(t, err)
	assert.Equal(t, "contador@acme.in", u.Email)
	assert.Equal(t, "contador@acme.in", u.Name, "sin nombre se usa el email")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "contador@acme.in", Password: "otra-pass", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "contador@acme.in", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, 3600, resp.ExpiresIn)

	id, err := pkgjwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, companyID, id.CompanyID)
	assert.Equal(t, entity.RoleAccountant, id.Role)
}

func TestRegister_RolPorDefectoViewer(t *testing.T) {
	uc, _ := newAuth(t)
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@acme.in", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, u.Role)
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@acme.in", Password: "12345678", CompanyID: "99999999-9999-9999-9999-999999999999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_Errores(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@acme.in", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.in", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@acme.in", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := store.Users().GetByEmailAndCompany(ctx, "a@acme.in", companyID)
	require.NoError(t, err)
	u.Status = "suspended"
	require.NoError(t, store.Users().Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@acme.in", Password: "12345678", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterOwner_SoloPrimerUsuario(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	owner, err := uc.RegisterOwner(ctx, dto.RegisterRequest{Email: "duena@acme.in", Password: "12345678", CompanyID: companyID, Role: entity.RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, owner.Role, "el primer usuario siempre es admin")

	_, err = uc.RegisterOwner(ctx, dto.RegisterRequest{Email: "otro@acme.in", Password: "12345678", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
