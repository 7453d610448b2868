package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// StudentHandler 학생 관리 모듈 HTTP 처리기 (관리자)
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler StudentHandler 생성
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// List 학생 목록 조회
// GET /api/v1/students
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	students, total, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, students, total, req.GetPage(), req.GetPageSize())
}

// Get 학생 상세 조회
// GET /api/v1/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, student)
}

// Create 학생 등록 (승인 절차 없이 즉시 approved)
// POST /api/v1/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	student, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrStudentIDTaken) {
			response.Conflict(c, 12002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, student)
}

// Update 학생 정보 수정
// PUT /api/v1/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, student)
}

// UpdateScores 점수/이력 일괄 교체 (관리자 점수 조정)
// PUT /api/v1/students/:id/scores
func (h *StudentHandler) UpdateScores(c *gin.Context) {
	var req dto.UpdateStudentScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	student, err := h.studentSvc.UpdateScores(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, student)
}

// Delete 학생 삭제
// DELETE /api/v1/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Import CSV 명단 일괄 등록 (multipart "file" 필드)
// POST /api/v1/students/import
func (h *StudentHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "업로드 파일이 없습니다")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "업로드 파일을 열 수 없습니다")
		return
	}
	defer f.Close()

	result, err := h.studentSvc.ImportCSV(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrImportNoData) || errors.Is(err, service.ErrImportBadHeader) {
			response.BadRequest(c, 12004, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
