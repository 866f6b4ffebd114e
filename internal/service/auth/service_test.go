package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/invitation"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
	testPassword  = "rahasia123"
	validCode     = "123456"
)

// ========================================
// FAKES
// ========================================

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	user.UserRepository

	mu      sync.Mutex
	seq     int
	byEmail map[string]user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return user.User{}, user.ErrUserEmailExists
	}
	r.seq++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	created []employee.Employee
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.created = append(r.created, e)
	return e, nil
}

type fakeInvitations struct {
	invitation.InvitationService
	owners   map[string]string
	redeemed map[string]string
}

func (f *fakeInvitations) Redeem(ctx context.Context, code, userID string) (string, error) {
	adminID, ok := f.owners[code]
	if !ok {
		return "", invitation.ErrInviteCodeNotFound
	}
	if _, used := f.redeemed[code]; used {
		return "", invitation.ErrInviteCodeAlreadyUsed
	}
	f.redeemed[code] = userID
	return adminID, nil
}

type fixture struct {
	svc         auth.AuthService
	jwt         jwt.Service
	users       *fakeUserRepo
	employees   *fakeEmployeeRepo
	invitations *fakeInvitations
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)

	f := &fixture{
		jwt:       jwtService,
		users:     &fakeUserRepo{byEmail: make(map[string]user.User)},
		employees: &fakeEmployeeRepo{},
		invitations: &fakeInvitations{
			owners:   map[string]string{},
			redeemed: map[string]string{},
		},
	}
	f.svc = NewAuthService(fakeTx{}, f.users, f.employees, f.invitations, jwtService)
	return f
}

func (f *fixture) registerAdmin(t *testing.T, email string) auth.TokenResponse {
	t.Helper()
	resp, err := f.svc.RegisterAdmin(context.Background(), auth.RegisterAdminRequest{
		FullName:        "Ibu Sari",
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	return resp
}

func decodeClaims(t *testing.T, f *fixture, token string) map[string]interface{} {
	t.Helper()
	parsed, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	return claims
}

// ========================================
// TESTS
// ========================================

func TestRegisterAdmin(t *testing.T) {
	f := newFixture(t)

	resp := f.registerAdmin(t, "  Sari@Example.com ")

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "sari@example.com", resp.User.Email)
	assert.Equal(t, string(user.RoleAdmin), resp.User.Role)
	assert.Equal(t, resp.User.ID, resp.User.AdminID, "an admin is its own organization")

	claims := decodeClaims(t, f, resp.AccessToken)
	assert.Equal(t, resp.User.ID, claims["user_id"])
	assert.Equal(t, resp.User.ID, claims["admin_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
	assert.Nil(t, claims["employee_id"])

	stored, err := f.users.GetByEmail(context.Background(), "sari@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, stored.PasswordHash)
}

func TestRegisterAdmin_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.registerAdmin(t, "sari@example.com")

	_, err := f.svc.RegisterAdmin(context.Background(), auth.RegisterAdminRequest{
		FullName:        "Sari Lain",
		Email:           "SARI@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestRegisterAdmin_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterAdmin(context.Background(), auth.RegisterAdminRequest{
		FullName:        "",
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "confirm_password")
}

func TestRegisterEmployee(t *testing.T) {
	f := newFixture(t)
	admin := f.registerAdmin(t, "sari@example.com")
	f.invitations.owners[validCode] = admin.User.ID
	position := "Kasir"

	resp, err := f.svc.RegisterEmployee(context.Background(), auth.RegisterEmployeeRequest{
		InviteCode:      validCode,
		FullName:        "Budi Santoso",
		Email:           "budi@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		Position:        &position,
	})
	require.NoError(t, err)

	assert.Equal(t, admin.User.ID, resp.User.AdminID)
	assert.Equal(t, string(user.RoleEmployee), resp.User.Role)

	require.Len(t, f.employees.created, 1)
	emp := f.employees.created[0]
	assert.Equal(t, resp.User.ID, emp.ID, "the employee id is the user id")
	assert.Equal(t, admin.User.ID, emp.AdminID)
	assert.Equal(t, "Kasir", *emp.Position)
	assert.Equal(t, resp.User.ID, f.invitations.redeemed[validCode])

	claims := decodeClaims(t, f, resp.AccessToken)
	assert.Equal(t, resp.User.ID, claims["employee_id"])
	assert.Equal(t, admin.User.ID, claims["admin_id"])
}

func TestRegisterEmployee_InvalidInvite(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterEmployee(context.Background(), auth.RegisterEmployeeRequest{
		InviteCode:      "999999",
		FullName:        "Budi Santoso",
		Email:           "budi@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	assert.ErrorIs(t, err, invitation.ErrInviteCodeNotFound)
	assert.Empty(t, f.employees.created)
}

func TestRegisterEmployee_MalformedInvite(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterEmployee(context.Background(), auth.RegisterEmployeeRequest{
		InviteCode:      "12ab",
		FullName:        "Budi Santoso",
		Email:           "budi@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "invite_code")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	admin := f.registerAdmin(t, "sari@example.com")

	t.Run("success", func(t *testing.T) {
		resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "Sari@Example.com", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, admin.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "sari@example.com", Password: "salah12345"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: testPassword})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestIssueSSEToken(t *testing.T) {
	f := newFixture(t)
	admin := f.registerAdmin(t, "sari@example.com")

	resp, err := f.svc.IssueSSEToken(context.Background(), admin.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), resp.ExpiresIn)

	userID, err := f.jwt.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.User.ID, userID)

	_, err = f.jwt.ValidateSSEToken(admin.AccessToken)
	assert.Error(t, err, "an access token is not accepted on the event stream")
}
