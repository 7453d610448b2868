package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// SubmissionHandler 핵심 교과목 이수 자가보고 HTTP 처리기
type SubmissionHandler struct {
	subSvc service.SubmissionService
}

// NewSubmissionHandler SubmissionHandler 생성
func NewSubmissionHandler(subSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc}
}

// GetMine 내 제출 현황 (학생). 제출 이력이 없으면 data 가 null
// GET /api/v1/core-courses/submissions/my
func (h *SubmissionHandler) GetMine(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sub, err := h.subSvc.GetMine(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, sub)
}

// Submit 이수 현황 제출 (학생). 반려 후 재제출은 같은 행을 덮어쓴다
// POST /api/v1/core-courses/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitCoreCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	sub, err := h.subSvc.Submit(c.Request.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCoursesChecked),
			errors.Is(err, service.ErrTranscriptRequired):
			response.BadRequest(c, 15004, err.Error())
		case isFileError(err):
			response.BadRequest(c, 10006, err.Error())
		case errors.Is(err, service.ErrSubmissionLocked):
			response.Conflict(c, 15005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, sub)
}

// ListReview 학과별 제출 현황 (관리자 검토 화면)
// GET /api/v1/core-courses/submissions
func (h *SubmissionHandler) ListReview(c *gin.Context) {
	rows, err := h.subSvc.ListReview(
		c.Request.Context(),
		c.Query("field"),
		c.Query("department"),
		c.Query("status"),
	)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, rows)
}

// Approve 제출 승인 (관리자). 핵심교과 점수가 제출 점수로 덮어써진다
// POST /api/v1/core-courses/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sub, err := h.subSvc.Approve(c.Request.Context(), c.Param("id"), reviewerID)
	if err != nil {
		h.writeReviewError(c, err)
		return
	}
	response.OK(c, sub)
}

// Reject 제출 반려 (관리자, 사유 필수)
// POST /api/v1/core-courses/submissions/:id/reject
func (h *SubmissionHandler) Reject(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RejectSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15007, "반려 사유를 입력해주세요")
		return
	}

	sub, err := h.subSvc.Reject(c.Request.Context(), c.Param("id"), reviewerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrReasonRequired) {
			response.BadRequest(c, 15007, err.Error())
			return
		}
		h.writeReviewError(c, err)
		return
	}
	response.OK(c, sub)
}

func (h *SubmissionHandler) writeReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 15003, err.Error())
	case errors.Is(err, service.ErrSubmissionNotPending):
		response.Conflict(c, 15006, err.Error())
	default:
		response.InternalError(c)
	}
}
