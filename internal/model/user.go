package model

// 계정 유형
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleMaster  = "master"
)

// 계정 승인 상태
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

// User 사용자 테이블 (users)
// 학생/관리자/마스터 계정을 모두 담는다. 세 점수 버킷은 각 이력 목록의
// 합계를 비정규화한 캐시이며, total 은 저장하지 않고 읽기 시 합산한다.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	StudentID    string `gorm:"type:varchar(20)"                               json:"student_id"`
	Department   string `gorm:"type:varchar(100)"                              json:"department"`
	Field        string `gorm:"type:varchar(50)"                               json:"field"`
	Email        string `gorm:"type:varchar(255)"                              json:"email"`
	Phone        string `gorm:"type:varchar(30)"                               json:"phone"`
	Memo         string `gorm:"type:text"                                      json:"memo,omitempty"`
	Grade        int    `json:"grade"`
	AccountType  string `gorm:"type:varchar(20);not null;default:'student'"    json:"account_type"` // student | admin | master
	Status       string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`       // pending | approved | rejected

	NonCurricularScore   int          `gorm:"not null;default:0"          json:"non_curricular_score"`
	CoreSubjectScore     int          `gorm:"not null;default:0"          json:"core_subject_score"`
	IndustryScore        int          `gorm:"not null;default:0"          json:"industry_score"`
	NonCurricularHistory ScoreHistory `gorm:"type:jsonb;not null;default:'[]'" json:"non_curricular_history"`
	CoreSubjectHistory   ScoreHistory `gorm:"type:jsonb;not null;default:'[]'" json:"core_subject_history"`
	IndustryHistory      ScoreHistory `gorm:"type:jsonb;not null;default:'[]'" json:"industry_history"`

	BaseModel
}

// TableName 테이블명 지정
func (User) TableName() string { return "users" }

// Total 성공지수 합계. 세 버킷의 합을 읽기 시 계산하며 저장 컬럼은 없다.
func (u *User) Total() int {
	return u.NonCurricularScore + u.CoreSubjectScore + u.IndustryScore
}

// Credit 지정 버킷에 점수를 가산하고 이력 1건을 추가
func (u *User) Credit(bucket ScoreBucket, entry ScoreHistoryEntry) {
	switch bucket {
	case BucketNonCurricular:
		u.NonCurricularScore += entry.Score
		u.NonCurricularHistory = append(u.NonCurricularHistory, entry)
	case BucketCoreSubject:
		u.CoreSubjectScore += entry.Score
		u.CoreSubjectHistory = append(u.CoreSubjectHistory, entry)
	default:
		u.IndustryScore += entry.Score
		u.IndustryHistory = append(u.IndustryHistory, entry)
	}
}
