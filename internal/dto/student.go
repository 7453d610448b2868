package dto

// ── 학생 모듈 DTO ──

// StudentListRequest 학생 목록 조회 파라미터
type StudentListRequest struct {
	PaginationRequest
	Field   string `form:"field"   binding:"omitempty,max=50"` // 분야 필터 (전체/기타 포함)
	Keyword string `form:"keyword" binding:"omitempty,max=50"` // 학번/이름 검색
}

// CreateStudentRequest 관리자 학생 등록 요청. 등록 즉시 approved 상태가 된다.
type CreateStudentRequest struct {
	StudentID  string `json:"student_id" binding:"required,max=20"`
	Password   string `json:"password"   binding:"required,min=8,max=30"`
	Name       string `json:"name"       binding:"required,min=2,max=30"`
	Department string `json:"department" binding:"required,max=100"`
	Email      string `json:"email"      binding:"omitempty,email"`
	Phone      string `json:"phone"      binding:"omitempty,max=30"`
	Grade      int    `json:"grade"      binding:"omitempty,min=1,max=6"`
	Memo       string `json:"memo"       binding:"omitempty,max=500"`
}

// UpdateStudentRequest 학생 정보 수정 요청
type UpdateStudentRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=30"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Phone      *string `json:"phone"      binding:"omitempty,max=30"`
	Grade      *int    `json:"grade"      binding:"omitempty,min=1,max=6"`
	Memo       *string `json:"memo"       binding:"omitempty,max=500"`
}

// UpdateStudentScoresRequest 점수/이력 일괄 교체 요청 (관리자 점수 조정)
type UpdateStudentScoresRequest struct {
	NonCurricularScore   int                 `json:"non_curricular_score"   binding:"min=0"`
	CoreSubjectScore     int                 `json:"core_subject_score"     binding:"min=0"`
	IndustryScore        int                 `json:"industry_score"         binding:"min=0"`
	NonCurricularHistory []ScoreHistoryEntry `json:"non_curricular_history"`
	CoreSubjectHistory   []ScoreHistoryEntry `json:"core_subject_history"`
	IndustryHistory      []ScoreHistoryEntry `json:"industry_history"`
}

// ScoreHistoryEntry 점수 이력 1건
type ScoreHistoryEntry struct {
	ProgramID    string `json:"program_id"`
	ProgramTitle string `json:"program_title" binding:"required"`
	Score        int    `json:"score"`
	Date         string `json:"date" binding:"required"`
}

// StudentResponse 학생 상세 응답. total 은 세 버킷 합으로 읽기 시 계산한다.
type StudentResponse struct {
	ID                   string              `json:"id"`
	StudentID            string              `json:"student_id"`
	Name                 string              `json:"name"`
	Department           string              `json:"department"`
	Field                string              `json:"field"`
	Email                string              `json:"email"`
	Phone                string              `json:"phone"`
	Grade                int                 `json:"grade"`
	Memo                 string              `json:"memo,omitempty"`
	NonCurricularScore   int                 `json:"non_curricular_score"`
	CoreSubjectScore     int                 `json:"core_subject_score"`
	IndustryScore        int                 `json:"industry_score"`
	Total                int                 `json:"total"`
	NonCurricularHistory []ScoreHistoryEntry `json:"non_curricular_history"`
	CoreSubjectHistory   []ScoreHistoryEntry `json:"core_subject_history"`
	IndustryHistory      []ScoreHistoryEntry `json:"industry_history"`
}

// ImportStudentsResponse CSV 명단 일괄 등록 응답
type ImportStudentsResponse struct {
	Total   int                  `json:"total"`
	Success int                  `json:"success"`
	Skipped int                  `json:"skipped"`
	Errors  []ImportStudentError `json:"errors,omitempty"`
}

// ImportStudentError 등록 실패 상세
type ImportStudentError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
