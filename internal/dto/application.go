package dto

// ── 프로그램 신청 모듈 DTO ──

// ApplyRequest 프로그램 신청 요청 (학생)
type ApplyRequest struct {
	ProgramID     string                  `json:"program_id" binding:"required,uuid"`
	AttachedFiles []FileAttachmentPayload `json:"attached_files"`
}

// ApplicationResponse 신청 응답
type ApplicationResponse struct {
	ID            string                  `json:"id"`
	ProgramID     string                  `json:"program_id"`
	ProgramTitle  string                  `json:"program_title,omitempty"`
	StudentID     string                  `json:"student_id"`
	StudentName   string                  `json:"student_name,omitempty"`
	Status        string                  `json:"status"`
	StatusLabel   string                  `json:"status_label"`
	AppliedDate   string                  `json:"applied_date"`
	CompletedDate string                  `json:"completed_date,omitempty"`
	AttachedFiles []FileAttachmentPayload `json:"attached_files"`
}

// ApplicantResponse 프로그램별 신청자 명단 1행 (학생 정보 조인)
type ApplicantResponse struct {
	ApplicationID string `json:"application_id"`
	StudentID     string `json:"student_id"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	Field         string `json:"field"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	AppliedDate   string `json:"applied_date"`
	CompletedDate string `json:"completed_date,omitempty"`
}
