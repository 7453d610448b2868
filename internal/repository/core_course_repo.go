package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// CoreCourseRepository 핵심 교과목 카탈로그 데이터 접근 인터페이스
type CoreCourseRepository interface {
	Create(ctx context.Context, course *model.CoreCourse) error
	GetByID(ctx context.Context, id string) (*model.CoreCourse, error)
	GetByCode(ctx context.Context, field, department, courseCode string) (*model.CoreCourse, error)
	Update(ctx context.Context, course *model.CoreCourse) error
	Delete(ctx context.Context, id string) error
	ListByDepartment(ctx context.Context, field, department string) ([]model.CoreCourse, error)
}

// coreCourseRepo CoreCourseRepository 의 GORM 구현
type coreCourseRepo struct {
	db *gorm.DB
}

// NewCoreCourseRepo CoreCourseRepository 인스턴스 생성
func NewCoreCourseRepo(db *gorm.DB) CoreCourseRepository {
	return &coreCourseRepo{db: db}
}

func (r *coreCourseRepo) Create(ctx context.Context, course *model.CoreCourse) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *coreCourseRepo) GetByID(ctx context.Context, id string) (*model.CoreCourse, error) {
	var course model.CoreCourse
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetByCode 분야+학과 내 학수번호로 조회 (카탈로그 중복 점검)
func (r *coreCourseRepo) GetByCode(ctx context.Context, field, department, courseCode string) (*model.CoreCourse, error) {
	var course model.CoreCourse
	err := r.db.WithContext(ctx).
		Where("field = ? AND department = ? AND course_code = ?", field, department, courseCode).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *coreCourseRepo) Update(ctx context.Context, course *model.CoreCourse) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *coreCourseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CoreCourse{}).Error
}

// ListByDepartment order_index, 과목명 순 정렬 조회
func (r *coreCourseRepo) ListByDepartment(ctx context.Context, field, department string) ([]model.CoreCourse, error) {
	var courses []model.CoreCourse
	db := r.db.WithContext(ctx).Model(&model.CoreCourse{})
	if field != "" {
		db = db.Where("field = ?", field)
	}
	if department != "" {
		db = db.Where("department = ?", department)
	}
	err := db.Order("order_index ASC, course_name ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
