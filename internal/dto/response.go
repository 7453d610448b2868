package dto

// ── 공통 페이지네이션 ──

// PaginationRequest 공통 페이지네이션 파라미터
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 페이지 번호 (기본값 포함)
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 페이지 크기 (기본값 포함)
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 오프셋 계산
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 공통 첨부 파일 ──

// FileAttachmentPayload 업로드 첨부 파일 (data URL 인라인)
type FileAttachmentPayload struct {
	Name    string `json:"name"     binding:"required,max=255"`
	Size    int64  `json:"size"     binding:"required,min=1"`
	Type    string `json:"type"     binding:"required"`
	DataURL string `json:"data_url" binding:"required"`
}
