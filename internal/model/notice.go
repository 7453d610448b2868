package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notice 공지사항 테이블 (notices)
// field 로 대상 분야를 지정한다 (공통 포함). 워크플로 없음.
type Notice struct {
	ID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title         string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Field         string    `gorm:"type:varchar(50);not null"                      json:"field"`
	Content       string    `gorm:"type:text;not null"                             json:"content"`
	Author        string    `gorm:"type:varchar(100);not null"                     json:"author"`
	Date          time.Time `gorm:"type:date;not null"                             json:"date"`
	Views         int       `gorm:"not null;default:0"                             json:"views"`
	ImageURL      string    `gorm:"type:text"                                      json:"image_url,omitempty"`
	AttachedFiles datatypes.JSONSlice[FileAttachment] `gorm:"type:jsonb;not null;default:'[]'" json:"attached_files"`
	BaseModel
}

// TableName 테이블명 지정
func (Notice) TableName() string { return "notices" }
