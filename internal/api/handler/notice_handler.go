package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// NoticeHandler 공지사항 모듈 HTTP 처리기
type NoticeHandler struct {
	noticeSvc service.NoticeService
}

// NewNoticeHandler NoticeHandler 생성
func NewNoticeHandler(noticeSvc service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc}
}

// List 공지 목록 조회
// GET /api/v1/notices
func (h *NoticeHandler) List(c *gin.Context) {
	var req dto.NoticeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	notices, total, err := h.noticeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, notices, total, req.GetPage(), req.GetPageSize())
}

// Get 공지 상세 조회 (조회수 증가)
// GET /api/v1/notices/:id
func (h *NoticeHandler) Get(c *gin.Context) {
	notice, err := h.noticeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoticeNotFound) {
			response.NotFound(c, 13101, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, notice)
}

// Create 공지 생성 (관리자). 작성자명은 로그인 계정에서 가져온다
// POST /api/v1/notices
func (h *NoticeHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	notice, err := h.noticeSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if isFileError(err) {
			response.BadRequest(c, 10006, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, notice)
}

// Update 공지 수정 (관리자)
// PUT /api/v1/notices/:id
func (h *NoticeHandler) Update(c *gin.Context) {
	var req dto.SaveNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	notice, err := h.noticeSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoticeNotFound):
			response.NotFound(c, 13101, err.Error())
		case isFileError(err):
			response.BadRequest(c, 10006, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, notice)
}

// Delete 공지 삭제 (관리자)
// DELETE /api/v1/notices/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	if err := h.noticeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNoticeNotFound) {
			response.NotFound(c, 13101, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
