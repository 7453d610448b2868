package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 모든 Repository 의 집합 진입점
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Program     ProgramRepository
	Notice      NoticeRepository
	Application ApplicationRepository
	CoreCourse  CoreCourseRepository
	Submission  SubmissionRepository
}

// NewRepository Repository 집합 생성
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Program:     NewProgramRepo(db),
		Notice:      NewNoticeRepo(db),
		Application: NewApplicationRepo(db),
		CoreCourse:  NewCoreCourseRepo(db),
		Submission:  NewSubmissionRepo(db),
	}
}

// Atomic fn 의 모든 쓰기를 하나의 트랜잭션으로 묶어 실행
// 신청 완료 처리(신청 갱신 + 점수 적립)처럼 다중 쓰기 작업의 부분 실패를 막는다.
// db 가 없는 경우(단위 테스트의 목 구성)에는 트랜잭션 없이 그대로 실행한다.
func (r *Repository) Atomic(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
