package dto

// ── 공지사항 모듈 DTO ──

// NoticeListRequest 공지 목록 조회 파라미터
type NoticeListRequest struct {
	PaginationRequest
	Field string `form:"field" binding:"omitempty,max=50"`
}

// SaveNoticeRequest 공지 생성/수정 요청
type SaveNoticeRequest struct {
	Title         string                  `json:"title"   binding:"required,max=200"`
	Field         string                  `json:"field"   binding:"required,max=50"`
	Content       string                  `json:"content" binding:"required"`
	Date          string                  `json:"date"    binding:"required,datetime=2006-01-02"`
	ImageURL      string                  `json:"image_url"`
	AttachedFiles []FileAttachmentPayload `json:"attached_files"`
}

// NoticeResponse 공지 응답
type NoticeResponse struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Field         string                  `json:"field"`
	Content       string                  `json:"content"`
	Author        string                  `json:"author"`
	Date          string                  `json:"date"`
	Views         int                     `json:"views"`
	ImageURL      string                  `json:"image_url,omitempty"`
	AttachedFiles []FileAttachmentPayload `json:"attached_files"`
}
