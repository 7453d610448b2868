package dto

// ── 핵심 교과목 카탈로그 DTO ──

// CoreCourseListRequest 교과목 목록 조회 파라미터
type CoreCourseListRequest struct {
	Field      string `form:"field"      binding:"omitempty,max=50"`
	Department string `form:"department" binding:"omitempty,max=100"`
}

// SaveCoreCourseRequest 교과목 생성/수정 요청
type SaveCoreCourseRequest struct {
	Field      string `json:"field"       binding:"required,max=50"`
	Department string `json:"department"  binding:"required,max=100"`
	CourseName string `json:"course_name" binding:"required,max=200"`
	CourseCode string `json:"course_code" binding:"required,max=50"`
	CourseType string `json:"course_type" binding:"required,oneof=전공기초 전공심화 전공핵심 전공선택"`
	Credits    int    `json:"credits"     binding:"required,min=1,max=6"`
	OrderIndex int    `json:"order_index" binding:"min=0"`
}

// CoreCourseResponse 교과목 응답
type CoreCourseResponse struct {
	ID         string `json:"id"`
	Field      string `json:"field"`
	Department string `json:"department"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
	CourseType string `json:"course_type"`
	Credits    int    `json:"credits"`
	OrderIndex int    `json:"order_index"`
}
