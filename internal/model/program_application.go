package model

import (
	"time"

	"gorm.io/datatypes"
)

// 신청 상태 기계: pending → approved → completed, pending → rejected(종결)
// completed/rejected 에서 되돌아가는 전이는 없다.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusCompleted = "completed"
)

// ProgramApplication 프로그램 신청 테이블 (program_applications)
type ProgramApplication struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProgramID     string     `gorm:"type:uuid;not null"                             json:"program_id"`
	StudentID     string     `gorm:"type:uuid;not null"                             json:"student_id"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	AppliedDate   time.Time  `gorm:"type:date;not null"                             json:"applied_date"`
	CompletedDate *time.Time `gorm:"type:date"                                      json:"completed_date,omitempty"`
	AttachedFiles datatypes.JSONSlice[FileAttachment] `gorm:"type:jsonb;not null;default:'[]'" json:"attached_files"`
	BaseModel

	// 연관
	Program *Program `gorm:"foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	Student *User    `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// TableName 테이블명 지정
func (ProgramApplication) TableName() string { return "program_applications" }

// IsActive 활성(대기/승인) 신청 여부. 중복 신청 판정과 정원 집계에 쓰인다.
func (a *ProgramApplication) IsActive() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusApproved
}

// StatusLabel 상태의 한글 라벨 (명단 내보내기에 사용)
func (a *ProgramApplication) StatusLabel() string {
	switch a.Status {
	case ApplicationStatusPending:
		return "대기중"
	case ApplicationStatusApproved:
		return "승인됨"
	case ApplicationStatusRejected:
		return "거부됨"
	case ApplicationStatusCompleted:
		return "이수완료"
	default:
		return "알 수 없음"
	}
}
