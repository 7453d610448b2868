package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	"github.com/leehwangjae/student-success-system-v2/pkg/redis"
)

// ── 인증 모듈 업무 오류 ──

var (
	ErrInvalidCredentials = errors.New("아이디 또는 비밀번호가 일치하지 않습니다.")
	ErrAccountPending     = errors.New("회원가입 승인 대기 중입니다. 관리자의 승인을 기다려주세요.")
	ErrAccountRejected    = errors.New("회원가입이 거부되었습니다.")
	ErrUsernameTaken      = errors.New("이미 사용 중인 아이디입니다")
	ErrUserNotFound       = errors.New("사용자를 찾을 수 없습니다")
	ErrPasswordMismatch   = errors.New("현재 비밀번호가 일치하지 않습니다")
	ErrUserNotPending     = errors.New("승인 대기 상태의 계정이 아닙니다")
)

// AuthService 인증/계정 업무 인터페이스
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error

	// 마스터 전용: 가입 승인 워크플로
	ListPendingUsers(ctx context.Context) ([]dto.UserResponse, error)
	ApproveUser(ctx context.Context, userID string) error
	RejectUser(ctx context.Context, userID string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService AuthService 인스턴스 생성
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// Signup 회원가입. 생성된 계정은 마스터 승인 전까지 pending 상태로 로그인 불가
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	// 1. 아이디 중복 확인
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("사용자 조회 실패", zap.Error(err))
		return nil, err
	}

	// 2. 비밀번호 해시
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. 계정 생성 (학과명으로 소속 분야 판정)
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		StudentID:    req.StudentID,
		Department:   req.Department,
		Field:        model.DepartmentField(req.Department),
		Email:        req.Email,
		Phone:        req.Phone,
		Grade:        req.Grade,
		AccountType:  req.AccountType,
		Status:       model.UserStatusPending,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("계정 생성 실패", zap.Error(err))
		return nil, err
	}

	s.logger.Info("회원가입 접수",
		zap.String("username", user.Username),
		zap.String("account_type", user.AccountType))

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 사용자 조회
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("사용자 조회 실패", zap.Error(err))
		return nil, err
	}

	// 2. 비밀번호 검증 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 계정 상태 게이트: pending 과 rejected 는 서로 다른 안내로 거부
	switch user.Status {
	case model.UserStatusPending:
		return nil, ErrAccountPending
	case model.UserStatusRejected:
		return nil, ErrAccountRejected
	}

	// 4. 토큰 쌍 발급
	return s.issueTokens(user, req.RememberMe)
}

// RefreshToken Refresh Token 으로 새 토큰 쌍 발급
func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	// 블랙리스트 확인 (로그아웃된 토큰 차단)
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("블랙리스트 조회 실패", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Status != model.UserStatusApproved {
		return nil, jwt.ErrTokenInvalid
	}

	return s.issueTokens(user, claims.RememberMe)
}

// Logout 토큰의 JWT ID 를 남은 유효기간 동안 블랙리스트에 등록
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		// 로그아웃 자체는 실패시키지 않는다
		s.logger.Warn("토큰 블랙리스트 등록 실패", zap.Error(err))
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.User.Update(ctx, user)
}

// ═══════════════════════════════════════════════════════════
// 마스터 가입 승인 워크플로
// ═══════════════════════════════════════════════════════════

func (s *authService) ListPendingUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListPending(ctx)
	if err != nil {
		s.logger.Error("승인 대기 목록 조회 실패", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ApproveUser 가입 승인: pending → approved
func (s *authService) ApproveUser(ctx context.Context, userID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Status != model.UserStatusPending {
		return ErrUserNotPending
	}
	user.Status = model.UserStatusApproved
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("가입 승인", zap.String("username", user.Username))
	return nil
}

// RejectUser 가입 거부. 계정 행을 그대로 삭제한다
func (s *authService) RejectUser(ctx context.Context, userID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Status != model.UserStatusPending {
		return ErrUserNotPending
	}
	if err := s.repo.User.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("가입 거부", zap.String("username", user.Username))
	return nil
}

// ── 내부 헬퍼 ──

func (s *authService) issueTokens(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.AccountType, user.Field)
	if err != nil {
		s.logger.Error("AccessToken 생성 실패", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.AccountType, user.Field, rememberMe)
	if err != nil {
		s.logger.Error("RefreshToken 생성 실패", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.AccountType,
		StudentID:  u.StudentID,
		Department: u.Department,
		Field:      u.Field,
		Email:      u.Email,
		Phone:      u.Phone,
		Grade:      u.Grade,
		Status:     u.Status,
	}
}
