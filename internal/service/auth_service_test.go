package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"oslsr/backend/config"
	"oslsr/backend/internal/dto"
	"oslsr/backend/internal/model"
	"oslsr/backend/pkg/jwt"
)

func newTestAuthService(t *testing.T) (AuthService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepos()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码散列失败: %v", err)
	}
	lga1 := "lga-1"
	mocks.staff.staff = []model.Staff{
		{UserID: "sup-1", FullName: "Adebayo Ogundimu", Email: "adebayo@oslsr.gov.ng",
			PasswordHash: string(hash), Role: model.RoleSupervisor, Status: model.StatusActive,
			LgaID: &lga1, Lga: &model.Lga{LgaID: lga1, Name: "Ife Central"}},
		{UserID: "gone-1", FullName: "Left", Email: "left@oslsr.gov.ng",
			PasswordHash: string(hash), Role: model.RoleEnumerator, Status: model.StatusInactive},
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-0123456789",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, jwtMgr, zap.NewNop()), mocks
}

func TestLogin_Success(t *testing.T) {
	svc, mocks := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "adebayo@oslsr.gov.ng",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("期望返回 Token 对")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("有效期期望 900 秒，实际=%d", resp.ExpiresIn)
	}
	if resp.User.ID != "sup-1" || resp.User.Role != model.RoleSupervisor {
		t.Errorf("用户信息错误: %+v", resp.User)
	}
	if resp.User.LgaName != "Ife Central" {
		t.Errorf("LGA 名称期望 Ife Central，实际=%q", resp.User.LgaName)
	}
	// 登录时间已记录
	if mocks.staff.staff[0].LastLoginAt == nil {
		t.Error("登录成功应更新 last_login_at")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "adebayo@oslsr.gov.ng",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// 账号不存在与密码错误返回同一错误，不泄露账号存在性
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@oslsr.gov.ng",
		Password: "correct-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "left@oslsr.gov.ng",
		Password: "correct-password",
	})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("期望 ErrAccountDisabled，实际=%v", err)
	}
}
