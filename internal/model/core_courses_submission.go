package model

import "time"

// 제출 상태: (없음) → pending → approved, pending → rejected → pending(재제출)
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// SubmissionStatusLabel 제출 상태의 한글 라벨
func SubmissionStatusLabel(status string) string {
	switch status {
	case SubmissionStatusPending:
		return "검토중"
	case SubmissionStatusApproved:
		return "승인"
	case SubmissionStatusRejected:
		return "반려"
	default:
		return "미제출"
	}
}

// CoreCoursesSubmission 핵심 교과목 이수 자가보고 테이블 (core_courses_submissions)
// 학생당 1행. 반려 후 재제출은 같은 행을 덮어쓴다.
type CoreCoursesSubmission struct {
	ID                  string              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID           string              `gorm:"type:uuid;not null;uniqueIndex"                 json:"student_id"`
	CompletedCourses    CompletedCourseList `gorm:"type:jsonb;not null;default:'[]'"               json:"completed_courses"`
	TotalCompletedCount int                 `gorm:"not null;default:0"                             json:"total_completed_count"`
	TotalScore          int                 `gorm:"not null;default:0"                             json:"total_score"` // ≤ 50
	TranscriptFile      string              `gorm:"type:text"                                      json:"transcript_file,omitempty"` // data URL
	TranscriptFileName  string              `gorm:"type:varchar(255)"                              json:"transcript_file_name"`
	TranscriptFileSize  int64               `gorm:"not null;default:0"                             json:"transcript_file_size"`
	Status              string              `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	RejectionReason     string              `gorm:"type:text"                                      json:"rejection_reason,omitempty"`
	SubmittedAt         *time.Time          `json:"submitted_at,omitempty"`
	ReviewedAt          *time.Time          `json:"reviewed_at,omitempty"`
	ReviewedBy          *string             `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	BaseModel

	// 연관
	Student *User `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// TableName 테이블명 지정
func (CoreCoursesSubmission) TableName() string { return "core_courses_submissions" }
