package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/sebuszqo/Expendas/internal/user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, emailOrLogin, password string) (*user.User, string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
	logger      *log.Logger
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, logger *log.Logger) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

// Login checks the credentials and issues an access token.
func (s *service) Login(ctx context.Context, emailOrLogin, password string) (*user.User, string, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(ctx, emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("user lookup failed", "err", err)
		return nil, "", ErrInternalError
	}

	if !user.DoPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID)
	if err != nil {
		s.logger.Error("JWT generation failed", "err", err)
		return nil, "", ErrInternalError
	}
	return existingUser, token, nil
}
