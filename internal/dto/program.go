package dto

// ── 프로그램 모듈 DTO ──

// ProgramListRequest 프로그램 목록 조회 파라미터
type ProgramListRequest struct {
	PaginationRequest
	Field    string `form:"field"    binding:"omitempty,max=50"`
	Status   string `form:"status"   binding:"omitempty,oneof=모집중 진행중 종료"`
	Category string `form:"category" binding:"omitempty,oneof=비교과 교과 산학협력"`
}

// SaveProgramRequest 프로그램 생성/수정 요청
type SaveProgramRequest struct {
	Title           string                  `json:"title"            binding:"required,max=200"`
	Category        string                  `json:"category"         binding:"required,oneof=비교과 교과 산학협력"`
	Field           string                  `json:"field"            binding:"required,max=50"`
	StartDate       string                  `json:"start_date"       binding:"omitempty,datetime=2006-01-02"`
	EndDate         string                  `json:"end_date"         binding:"omitempty,datetime=2006-01-02"`
	Status          string                  `json:"status"           binding:"required,oneof=모집중 진행중 종료"`
	MaxParticipants int                     `json:"max_participants" binding:"min=0"`
	RequiresFile    bool                    `json:"requires_file"`
	Score           int                     `json:"score"            binding:"min=0"`
	Description     string                  `json:"description"`
	ImageURL        string                  `json:"image_url"`
	AttachedFiles   []FileAttachmentPayload `json:"attached_files"`
}

// ProgramResponse 프로그램 응답
type ProgramResponse struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	Category        string                  `json:"category"`
	Field           string                  `json:"field"`
	StartDate       string                  `json:"start_date,omitempty"`
	EndDate         string                  `json:"end_date,omitempty"`
	Status          string                  `json:"status"`
	MaxParticipants int                     `json:"max_participants"`
	RequiresFile    bool                    `json:"requires_file"`
	Score           int                     `json:"score"`
	Description     string                  `json:"description,omitempty"`
	ImageURL        string                  `json:"image_url,omitempty"`
	AttachedFiles   []FileAttachmentPayload `json:"attached_files"`
	ApplicantCount  int                     `json:"applicant_count"` // 활성(대기/승인) 신청 수
}
