package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// ApplicationHandler 프로그램 신청 모듈 HTTP 처리기
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler ApplicationHandler 생성
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Apply 프로그램 신청 (학생)
// POST /api/v1/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	app, err := h.appSvc.Apply(c.Request.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			response.NotFound(c, 13001, err.Error())
		case errors.Is(err, service.ErrProgramNotRecruiting):
			response.Conflict(c, 13002, err.Error())
		case errors.Is(err, service.ErrAlreadyApplied):
			response.Conflict(c, 14002, err.Error())
		case errors.Is(err, service.ErrFileRequired):
			response.BadRequest(c, 14004, err.Error())
		case isFileError(err):
			response.BadRequest(c, 10006, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, app)
}

// Cancel 신청 취소 (학생, 대기중 건만)
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Cancel(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.appSvc.Cancel(c.Request.Context(), studentID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.NotFound(c, 14001, err.Error())
		case errors.Is(err, service.ErrNotOwnApplication):
			response.Forbidden(c, 14005, err.Error())
		case errors.Is(err, service.ErrCancelNotPending):
			response.Conflict(c, 14003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// ListMine 내 신청 목록 (학생)
// GET /api/v1/applications/my
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListMine(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, apps)
}

// ListByProgram 프로그램별 신청자 명단 (관리자)
// GET /api/v1/programs/:id/applicants
func (h *ApplicationHandler) ListByProgram(c *gin.Context) {
	applicants, err := h.appSvc.ListByProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, applicants)
}

// Approve 신청 승인 (관리자)
// POST /api/v1/applications/:id/approve
func (h *ApplicationHandler) Approve(c *gin.Context) {
	app, err := h.appSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.OK(c, app)
}

// Reject 신청 거부 (관리자)
// POST /api/v1/applications/:id/reject
func (h *ApplicationHandler) Reject(c *gin.Context) {
	app, err := h.appSvc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.OK(c, app)
}

// Complete 이수 완료 처리 및 점수 적립 (관리자)
// POST /api/v1/applications/:id/complete
func (h *ApplicationHandler) Complete(c *gin.Context) {
	app, err := h.appSvc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.OK(c, app)
}

func (h *ApplicationHandler) writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrNotPendingApp), errors.Is(err, service.ErrNotApprovedApp):
		response.Conflict(c, 14003, err.Error())
	case errors.Is(err, service.ErrProgramNotFound):
		response.NotFound(c, 13001, err.Error())
	default:
		response.InternalError(c)
	}
}
