package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"text2learn_backend/internal/config"
	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
	"text2learn_backend/internal/util"
	"text2learn_backend/pkg/logger"
)

const otpTTL = 10 * time.Minute

// AuthService 注册（邮箱验证码）、登录与令牌签发
type AuthService struct {
	userRepo *repository.UserRepository
	email    *EmailService
	redis    *redis.Client
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, email *EmailService, rdb *redis.Client, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		email:    email,
		redis:    rdb,
		jwtCfg:   jwtCfg,
	}
}

// SendOTP 生成 6 位验证码，存入 Redis 并发送到邮箱。
// 已注册邮箱直接拒绝，避免对同一邮箱重复注册。
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing != nil {
		return util.ErrEmailRegistered
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, otpKey(email), otp, otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.email.SendOTP(email, otp); err != nil {
		logger.Log.Error("验证码邮件发送失败", zap.String("email", email), zap.Error(err))
		return err
	}
	return nil
}

// Register 校验验证码后创建用户
func (s *AuthService) Register(ctx context.Context, name, email, password, otp string) (*model.User, error) {
	stored, err := s.redis.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if stored != otp {
		return nil, util.ErrInvalidOTP
	}

	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// 验证码一次性使用
	s.redis.Del(ctx, otpKey(email))

	logger.Log.Info("用户注册成功", zap.Uint("userID", user.ID), zap.String("email", email))
	return user, nil
}

// Login 校验凭证并签发 JWT
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.jwtCfg.Secret, s.jwtCfg.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("更新最后登录时间失败", zap.Uint("userID", user.ID), zap.Error(err))
	}
	return user, token, nil
}

func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	return s.userRepo.FindByID(userID)
}

func otpKey(email string) string {
	return "otp:" + email
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
