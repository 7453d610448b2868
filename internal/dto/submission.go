package dto

// ── 핵심 교과목 이수 자가보고 DTO ──

// CompletedCoursePayload 체크된 이수 과목 1건
type CompletedCoursePayload struct {
	CourseID    string `json:"course_id"    binding:"required,uuid"`
	CourseCode  string `json:"course_code"  binding:"required"`
	CourseName  string `json:"course_name"  binding:"required"`
	CourseType  string `json:"course_type"  binding:"required"`
	IsCompleted bool   `json:"is_completed"`
}

// SubmitCoreCoursesRequest 이수 현황 제출 요청 (학생)
// 항상 같은 행을 덮어쓰며 상태를 pending 으로 되돌린다
type SubmitCoreCoursesRequest struct {
	CompletedCourses   []CompletedCoursePayload `json:"completed_courses" binding:"required"`
	TranscriptFile     string                   `json:"transcript_file"      binding:"required"` // data URL
	TranscriptFileName string                   `json:"transcript_file_name" binding:"required,max=255"`
	TranscriptFileSize int64                    `json:"transcript_file_size" binding:"required,min=1"`
}

// RejectSubmissionRequest 제출 반려 요청 (사유 필수)
type RejectSubmissionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// SubmissionResponse 제출 응답
type SubmissionResponse struct {
	ID                  string                   `json:"id"`
	StudentID           string                   `json:"student_id"`
	CompletedCourses    []CompletedCoursePayload `json:"completed_courses"`
	TotalCompletedCount int                      `json:"total_completed_count"`
	TotalScore          int                      `json:"total_score"`
	Percentage          int                      `json:"percentage"` // MAX_SCORE(50) 대비 백분율
	TranscriptFileName  string                   `json:"transcript_file_name"`
	TranscriptFileSize  int64                    `json:"transcript_file_size"`
	Status              string                   `json:"status"`
	StatusLabel         string                   `json:"status_label"`
	RejectionReason     string                   `json:"rejection_reason,omitempty"`
	SubmittedAt         string                   `json:"submitted_at,omitempty"`
	ReviewedAt          string                   `json:"reviewed_at,omitempty"`
}

// SubmissionReviewRow 학과별 제출 현황 1행 (학생 정보 조인, 검토 화면/내보내기용)
type SubmissionReviewRow struct {
	Student    StudentResponse     `json:"student"`
	Submission *SubmissionResponse `json:"submission"` // 미제출 시 null
}
