package model

import (
	"time"

	"gorm.io/datatypes"
)

// 프로그램 모집 상태 (한글 라벨이 저장값)
const (
	ProgramStatusRecruiting = "모집중"
	ProgramStatusOngoing    = "진행중"
	ProgramStatusClosed     = "종료"
)

// 프로그램 분류. 이수 완료 시 적립될 점수 버킷을 결정한다.
const (
	CategoryNonCurricular = "비교과"
	CategoryCurricular    = "교과"
	CategoryIndustry      = "산학협력"
)

// ScoreBucket 점수 버킷 열거형
type ScoreBucket int

const (
	BucketNonCurricular ScoreBucket = iota
	BucketCoreSubject
	BucketIndustry
)

// BucketForCategory 프로그램 분류 → 점수 버킷 전사상
// 비교과/교과 외 분류(산학협력 포함)는 산학 버킷으로 귀속된다.
// 원 시스템의 기본 분기(else → industry)를 의도적으로 유지한다.
func BucketForCategory(category string) ScoreBucket {
	switch category {
	case CategoryNonCurricular:
		return BucketNonCurricular
	case CategoryCurricular:
		return BucketCoreSubject
	default:
		return BucketIndustry
	}
}

// Program 프로그램 테이블 (programs)
type Program struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title           string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Category        string     `gorm:"type:varchar(20);not null"                      json:"category"` // 비교과 | 교과 | 산학협력
	Field           string     `gorm:"type:varchar(50);not null"                      json:"field"`
	StartDate       *time.Time `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate         *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'모집중'"     json:"status"` // 모집중 | 진행중 | 종료
	MaxParticipants int        `gorm:"not null;default:0"                             json:"max_participants"`
	RequiresFile    bool       `gorm:"not null;default:false"                         json:"requires_file"`
	Score           int        `gorm:"not null;default:0"                             json:"score"`
	Description     string     `gorm:"type:text"                                      json:"description,omitempty"`
	ImageURL        string     `gorm:"type:text"                                      json:"image_url,omitempty"` // data URL
	AttachedFiles   datatypes.JSONSlice[FileAttachment] `gorm:"type:jsonb;not null;default:'[]'" json:"attached_files"`
	BaseModel
}

// TableName 테이블명 지정
func (Program) TableName() string { return "programs" }
