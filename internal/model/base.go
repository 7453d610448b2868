package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB 사용자 정의 타입 ──

// ScoreHistoryEntry 점수 적립 이력 1건
// 프로그램 이수 완료 시 해당 버킷 이력에 추가된다
type ScoreHistoryEntry struct {
	ProgramID    string `json:"program_id"`
	ProgramTitle string `json:"program_title"`
	Score        int    `json:"score"`
	Date         string `json:"date"` // YYYY-MM-DD
}

// ScoreHistory JSONB 점수 이력 목록, GORM Scanner/Valuer 구현
type ScoreHistory []ScoreHistoryEntry

// Scan JSONB 바이트를 이력 목록으로 역직렬화
func (h *ScoreHistory) Scan(src interface{}) error {
	if src == nil {
		*h = ScoreHistory{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("ScoreHistory.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*h = ScoreHistory{}
		return nil
	}
	return json.Unmarshal(b, h)
}

// Value 이력 목록을 JSONB 로 직렬화
func (h ScoreHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// CompletedCourse 학생이 체크한 이수 과목 1건 (제출 행 내부 JSONB)
type CompletedCourse struct {
	CourseID    string `json:"course_id"`
	CourseCode  string `json:"course_code"`
	CourseName  string `json:"course_name"`
	CourseType  string `json:"course_type"`
	IsCompleted bool   `json:"is_completed"`
}

// CompletedCourseList JSONB 이수 과목 목록, GORM Scanner/Valuer 구현
type CompletedCourseList []CompletedCourse

// Scan JSONB 바이트를 과목 목록으로 역직렬화
func (l *CompletedCourseList) Scan(src interface{}) error {
	if src == nil {
		*l = CompletedCourseList{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("CompletedCourseList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = CompletedCourseList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Value 과목 목록을 JSONB 로 직렬화
func (l CompletedCourseList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// FileAttachment 행에 인라인 저장되는 첨부 파일 (data URL 인코딩)
type FileAttachment struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`     // MIME 타입
	DataURL string `json:"data_url"` // data:<mime>;base64,<payload>
}

// BaseModel 공통 감사 필드 (모든 업무 모델에 임베드)
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
