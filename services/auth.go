package services

import (
	"errors"
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/theramind/journal_api/dto"
	"github.com/theramind/journal_api/services/repositories"
	"github.com/theramind/journal_api/shared"
)

// AuthService owns the account lifecycle: register, login and the fiber
// middleware gating journal routes.
type AuthService struct {
	context.DefaultService

	sqlSvc *SqliteService
	jwtSvc *JWTService

	users *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.users = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := svc.users.GetUserByEmail(req.Email); err == nil {
		return nil, shared.NewConflictError(nil, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	user, err := svc.users.CreateUser(req.Email, req.Password)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return svc.authResponse(user.ID, req.Email)
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := svc.users.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError("Invalid credentials")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if !svc.users.VerifyPassword(user, req.Password) {
		return nil, shared.NewUnauthorizedError("Invalid credentials")
	}

	if err := svc.users.TouchLastLogin(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login time")
	}

	return svc.authResponse(user.ID, user.Email)
}

// Logout is client-side for stateless JWTs; the endpoint exists so clients
// have a uniform call to drop their token against.
func (svc *AuthService) Logout(userID string) error {
	log.WithField("user_id", userID).Info("User logged out")
	return nil
}

func (svc *AuthService) authResponse(userID, email string) (*dto.AuthResponse, error) {
	user, err := svc.users.GetUser(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(userID)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	return &dto.AuthResponse{
		Token: *pair,
		User: dto.UserInfo{
			ID:        user.ID,
			Email:     email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if userID == "" {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}
