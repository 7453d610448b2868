package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// AuthHandler 인증/계정 모듈 HTTP 처리기
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler AuthHandler 생성
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup 회원가입
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	user, err := h.authSvc.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(c, 11004, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}

// Login 로그인. 승인 대기/거부 계정은 각각 다른 안내로 거부된다
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, err.Error())
		case errors.Is(err, service.ErrAccountPending):
			response.Error(c, http.StatusForbidden, 11002, err.Error())
		case errors.Is(err, service.ErrAccountRejected):
			response.Error(c, http.StatusForbidden, 11003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// RefreshToken 토큰 갱신
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenInvalid) ||
			errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, 11006, "토큰이 유효하지 않습니다")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 로그아웃. 현재 토큰을 블랙리스트에 등록한다
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me 내 정보 조회
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// ChangePassword 비밀번호 변경
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, err.Error())
		case errors.Is(err, service.ErrPasswordMismatch):
			response.BadRequest(c, 11005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// ListPendingUsers 승인 대기 계정 목록 (마스터)
// GET /api/v1/users/pending
func (h *AuthHandler) ListPendingUsers(c *gin.Context) {
	users, err := h.authSvc.ListPendingUsers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// ApproveUser 가입 승인 (마스터)
// POST /api/v1/users/:id/approve
func (h *AuthHandler) ApproveUser(c *gin.Context) {
	if err := h.authSvc.ApproveUser(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, err.Error())
		case errors.Is(err, service.ErrUserNotPending):
			response.Conflict(c, 12003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// RejectUser 가입 거부 (마스터). 계정 행이 삭제된다
// POST /api/v1/users/:id/reject
func (h *AuthHandler) RejectUser(c *gin.Context) {
	if err := h.authSvc.RejectUser(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, err.Error())
		case errors.Is(err, service.ErrUserNotPending):
			response.Conflict(c, 12003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
