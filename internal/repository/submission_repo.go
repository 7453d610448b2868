package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// SubmissionRepository 핵심 교과목 이수 자가보고 데이터 접근 인터페이스
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.CoreCoursesSubmission) error
	GetByID(ctx context.Context, id string) (*model.CoreCoursesSubmission, error)
	GetByStudent(ctx context.Context, studentID string) (*model.CoreCoursesSubmission, error)
	Update(ctx context.Context, sub *model.CoreCoursesSubmission) error
	List(ctx context.Context, field, status string) ([]model.CoreCoursesSubmission, error)
}

// submissionRepo SubmissionRepository 의 GORM 구현
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo SubmissionRepository 인스턴스 생성
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.CoreCoursesSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.CoreCoursesSubmission, error) {
	var sub model.CoreCoursesSubmission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByStudent 학생당 1행이므로 student_id 로 단건 조회
func (r *submissionRepo) GetByStudent(ctx context.Context, studentID string) (*model.CoreCoursesSubmission, error) {
	var sub model.CoreCoursesSubmission
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) Update(ctx context.Context, sub *model.CoreCoursesSubmission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// List 관리자 검토 목록. 분야 필터는 학생 테이블 조인으로 거른다.
func (r *submissionRepo) List(ctx context.Context, field, status string) ([]model.CoreCoursesSubmission, error) {
	var subs []model.CoreCoursesSubmission
	db := r.db.WithContext(ctx).
		Model(&model.CoreCoursesSubmission{}).
		Preload("Student")
	if field != "" && field != "전체" {
		db = db.Joins("JOIN users ON users.id = core_courses_submissions.student_id").
			Where("users.field = ?", field)
	}
	if status != "" {
		db = db.Where("core_courses_submissions.status = ?", status)
	}
	err := db.Order("core_courses_submissions.submitted_at DESC NULLS LAST").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
