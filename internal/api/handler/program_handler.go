package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// ProgramHandler 프로그램 모듈 HTTP 처리기
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler ProgramHandler 생성
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// List 프로그램 목록 조회
// GET /api/v1/programs
func (h *ProgramHandler) List(c *gin.Context) {
	var req dto.ProgramListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	programs, total, err := h.programSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, programs, total, req.GetPage(), req.GetPageSize())
}

// Get 프로그램 상세 조회
// GET /api/v1/programs/:id
func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.programSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, program)
}

// Create 프로그램 생성 (관리자)
// POST /api/v1/programs
func (h *ProgramHandler) Create(c *gin.Context) {
	var req dto.SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	program, err := h.programSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if isFileError(err) {
			response.BadRequest(c, 10006, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, program)
}

// Update 프로그램 수정 (관리자)
// PUT /api/v1/programs/:id
func (h *ProgramHandler) Update(c *gin.Context) {
	var req dto.SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	program, err := h.programSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			response.NotFound(c, 13001, err.Error())
		case isFileError(err):
			response.BadRequest(c, 10006, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, program)
}

// Delete 프로그램 삭제 (관리자, 하드 삭제)
// DELETE /api/v1/programs/:id
func (h *ProgramHandler) Delete(c *gin.Context) {
	if err := h.programSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// isFileError 첨부 파일 검증 오류 여부
func isFileError(err error) bool {
	return errors.Is(err, service.ErrFileDataInvalid) ||
		errors.Is(err, service.ErrFileTooLarge) ||
		errors.Is(err, service.ErrFileTypeNotAllowed)
}
