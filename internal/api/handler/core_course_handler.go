package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// CoreCourseHandler 핵심 교과목 카탈로그 HTTP 처리기
type CoreCourseHandler struct {
	courseSvc service.CoreCourseService
}

// NewCoreCourseHandler CoreCourseHandler 생성
func NewCoreCourseHandler(courseSvc service.CoreCourseService) *CoreCourseHandler {
	return &CoreCourseHandler{courseSvc: courseSvc}
}

// List 교과목 목록 조회 (분야/학과 필터)
// GET /api/v1/core-courses
func (h *CoreCourseHandler) List(c *gin.Context) {
	var req dto.CoreCourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, courses)
}

// Create 교과목 등록 (관리자)
// POST /api/v1/core-courses
func (h *CoreCourseHandler) Create(c *gin.Context) {
	var req dto.SaveCoreCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCourseCodeTaken) {
			response.Conflict(c, 15002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, course)
}

// Update 교과목 수정 (관리자)
// PUT /api/v1/core-courses/:id
func (h *CoreCourseHandler) Update(c *gin.Context) {
	var req dto.SaveCoreCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 15001, err.Error())
		case errors.Is(err, service.ErrCourseCodeTaken):
			response.Conflict(c, 15002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, course)
}

// Delete 교과목 삭제 (관리자)
// DELETE /api/v1/core-courses/:id
func (h *CoreCourseHandler) Delete(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 15001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
