package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/go-playground/validator/v10"
)

// AuthService 账号注册、登录和token注销
type AuthService struct {
	gw       repository.Gateway
	secret   []byte
	validate *validator.Validate
	now      func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(gw repository.Gateway, secret string) *AuthService {
	return &AuthService{
		gw:       gw,
		secret:   []byte(secret),
		validate: validator.New(),
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	return selectOne[models.User](ctx, a.gw, repository.From(repository.UsersTable).Eq("email", email))
}

// Register 注册新账号
func (a *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	_, err := a.findByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: 邮箱已注册", ErrConflict)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, logFailure(err, "register")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := a.now()
	user := models.User{
		ID:           NewID(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.gw.Insert(ctx, repository.UsersTable, user); err != nil {
		return nil, logFailure(err, "register")
	}

	utils.Logger.Info().Str("email", user.Email).Msg("用户注册成功")
	return &user, nil
}

// Login 校验密码并签发token
func (a *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := a.findByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 用户不存在")
			return nil, ErrInvalidCredentials
		}
		return nil, logFailure(err, "login")
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 密码错误")
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(a.secret, user.ID, user.Email, a.now())
	if err != nil {
		return nil, err
	}

	utils.Logger.Info().Str("email", user.Email).Msg("用户登录成功")
	return &models.LoginResponse{Token: token, User: *user}, nil
}

// ParseToken 解析token并检查是否已注销
func (a *AuthService) ParseToken(ctx context.Context, token string) (*utils.TokenClaims, error) {
	claims, err := utils.ParseToken(a.secret, token)
	if err != nil {
		return nil, err
	}

	revoked, err := a.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("token已注销")
	}
	return claims, nil
}

// IsRevoked token是否已注销
func (a *AuthService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var rows []models.RevokedToken
	q := repository.From(repository.RevokedTokensTable).Select("id").Eq("id", tokenID)
	if err := a.gw.Select(ctx, q, &rows); err != nil {
		return false, logFailure(err, "check revoked token")
	}
	return len(rows) > 0, nil
}

// Logout 注销当前token
func (a *AuthService) Logout(ctx context.Context, user *utils.LoginUser) error {
	if user == nil || user.TokenID == "" {
		return fmt.Errorf("%w: 缺少token", ErrValidation)
	}
	expiresAt := user.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = a.now().Add(utils.TokenTTL)
	}

	revoked := models.RevokedToken{
		ID:        user.TokenID,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		RevokedAt: a.now(),
	}
	if err := a.gw.Insert(ctx, repository.RevokedTokensTable, revoked); err != nil {
		return logFailure(err, "logout")
	}

	utils.Logger.Info().Str("email", user.Email).Msg("用户已退出登录")
	return nil
}

// Me 当前用户资料
func (a *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := selectOne[models.User](ctx, a.gw, repository.From(repository.UsersTable).Eq("id", userID))
	if err != nil {
		return nil, logFailure(err, "me")
	}
	return user, nil
}
