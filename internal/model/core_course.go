package model

// 과목 구분 (4종)
const (
	CourseTypeBasic    = "전공기초"
	CourseTypeAdvanced = "전공심화"
	CourseTypeCore     = "전공핵심"
	CourseTypeElective = "전공선택"
)

// 핵심 교과목 점수 규칙: 과목당 5점, 최대 10과목 = 50점
const (
	PointsPerCourse = 5
	MaxCourses      = 10
	MaxCourseScore  = MaxCourses * PointsPerCourse
)

// CoreCourse 핵심 교과목 카탈로그 테이블 (core_courses)
// 분야+학과 단위로 관리되며 course_code 가 중복 판정 키다.
type CoreCourse struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Field      string `gorm:"type:varchar(50);not null"                      json:"field"`
	Department string `gorm:"type:varchar(100);not null"                     json:"department"`
	CourseName string `gorm:"type:varchar(200);not null"                     json:"course_name"`
	CourseCode string `gorm:"type:varchar(50);not null"                      json:"course_code"`
	CourseType string `gorm:"type:varchar(20);not null"                      json:"course_type"`
	Credits    int    `gorm:"not null;default:3"                             json:"credits"`
	OrderIndex int    `gorm:"not null;default:0"                             json:"order_index"`
	BaseModel
}

// TableName 테이블명 지정
func (CoreCourse) TableName() string { return "core_courses" }
