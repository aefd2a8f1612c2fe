package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
)

func newAuthService(t *testing.T) (*services.AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return services.NewAuthService(repositories.NewUserRepository(db)), db
}

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
		Phone:    "555-0100",
		Address:  "1 Main St",
		Answer:   "blue",
	}
}

func TestRegisterHashesCredentials(t *testing.T) {
	svc, db := newAuthService(t)

	user, err := svc.Register(registerInput())
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, models.RoleUser, user.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotEqual(t, "secret123", stored.Password, "password must be stored hashed")
	require.NotEqual(t, "blue", stored.Answer, "security answer must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	_, err = svc.Register(registerInput())
	require.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	user, token, err := svc.Login("jane@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "jane@example.com", user.Email)

	_, _, err = svc.Login("jane@example.com", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, services.ErrEmailNotFound)
}

func TestResetPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	require.ErrorIs(t, svc.ResetPassword("nobody@example.com", "blue", "newsecret"), services.ErrEmailNotFound)
	require.ErrorIs(t, svc.ResetPassword("jane@example.com", "red", "newsecret"), services.ErrWrongAnswer)

	require.NoError(t, svc.ResetPassword("jane@example.com", "blue", "newsecret"))

	_, _, err = svc.Login("jane@example.com", "newsecret")
	require.NoError(t, err)
	_, _, err = svc.Login("jane@example.com", "secret123")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	user, err := svc.Register(registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, services.ProfileInput{
		Name:  "Jane Q",
		Phone: "555-0199",
	})
	require.NoError(t, err)
	require.Equal(t, "Jane Q", updated.Name)
	require.Equal(t, "555-0199", updated.Phone)
	require.Equal(t, "1 Main St", updated.Address, "omitted fields keep their values")

	_, err = svc.UpdateProfile(user.ID, services.ProfileInput{Password: "tiny"})
	require.ErrorIs(t, err, services.ErrPasswordTooShort)

	_, err = svc.UpdateProfile(user.ID, services.ProfileInput{Password: "newsecret"})
	require.NoError(t, err)
	_, _, err = svc.Login("jane@example.com", "newsecret")
	require.NoError(t, err)
}
