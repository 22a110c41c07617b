package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/config"
	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, actor Actor, req dto.ChangePasswordRequest) error
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

var errCredentials = apperr.Validationf("Usuário ou senha inválidos")

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperr.Validationf("Usuário desativado")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errCredentials
	}
	return s.tokensFor(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, apperr.Validationf("Refresh token inválido ou expirado")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, apperr.Validationf("Refresh token inválido ou expirado")
	}
	username, _ := claims["username"].(string)

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil || !user.Active {
		return nil, apperr.Validationf("Refresh token inválido ou expirado")
	}
	return s.tokensFor(user)
}

func (s *authService) ChangePassword(ctx context.Context, actor Actor, req dto.ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return apperr.NotFound("Usuário")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apperr.Validationf("Senha atual incorreta")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

func (s *authService) tokensFor(user *model.User) (*dto.LoginResponse, error) {
	access, err := s.generateToken(user, "access", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	resp := &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			Active:   user.Active,
		},
	}
	if user.StoreID != nil {
		id := user.StoreID.String()
		resp.User.StoreID = &id
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.User, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"typ":      typ,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	if user.StoreID != nil {
		claims["store_id"] = user.StoreID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inesperado")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	return claims, nil
}
