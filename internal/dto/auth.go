package dto

// ── 인증 모듈 DTO ──

// LoginRequest 로그인 요청
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// SignupRequest 회원가입 요청. 가입 즉시 승인 대기(pending) 상태가 된다.
type SignupRequest struct {
	Username    string `json:"username"     binding:"required,min=4,max=50"`
	Password    string `json:"password"     binding:"required,min=8,max=30"`
	Name        string `json:"name"         binding:"required,min=2,max=30"`
	AccountType string `json:"account_type" binding:"required,oneof=student admin"`
	StudentID   string `json:"student_id"   binding:"omitempty,max=20"`
	Department  string `json:"department"   binding:"omitempty,max=100"`
	Email       string `json:"email"        binding:"omitempty,email"`
	Phone       string `json:"phone"        binding:"omitempty,max=30"`
	Grade       int    `json:"grade"        binding:"omitempty,min=1,max=6"`
}

// ChangePasswordRequest 비밀번호 변경 요청
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=30"`
}

// TokenResponse 토큰 쌍 응답
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 유효기간 (초)
	User         UserResponse `json:"user"`
}

// RefreshTokenRequest 토큰 갱신 요청
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse 사용자 기본 정보 응답 (민감 정보 제외)
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	StudentID   string `json:"student_id,omitempty"`
	Department  string `json:"department,omitempty"`
	Field       string `json:"field,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Grade       int    `json:"grade,omitempty"`
	Status      string `json:"status"`
}
