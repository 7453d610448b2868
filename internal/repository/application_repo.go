package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// ApplicationRepository 프로그램 신청 데이터 접근 인터페이스
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.ProgramApplication) error
	GetByID(ctx context.Context, id string) (*model.ProgramApplication, error)
	GetActiveByProgramAndStudent(ctx context.Context, programID, studentID string) (*model.ProgramApplication, error)
	Update(ctx context.Context, app *model.ProgramApplication) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]model.ProgramApplication, error)
	ListByProgram(ctx context.Context, programID string) ([]model.ProgramApplication, error)
	CountActiveByProgram(ctx context.Context, programID string) (int64, error)
	CountEnrolledByProgram(ctx context.Context, programID string) (int64, error)
}

// applicationRepo ApplicationRepository 의 GORM 구현
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo ApplicationRepository 인스턴스 생성
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.ProgramApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.ProgramApplication, error) {
	var app model.ProgramApplication
	err := r.db.WithContext(ctx).
		Preload("Program").
		Preload("Student").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetActiveByProgramAndStudent 학생의 해당 프로그램 활성(대기/승인) 신청 조회
// 중복 신청 사전 점검에 사용
func (r *applicationRepo) GetActiveByProgramAndStudent(ctx context.Context, programID, studentID string) (*model.ProgramApplication, error) {
	var app model.ProgramApplication
	err := r.db.WithContext(ctx).
		Where("program_id = ? AND student_id = ?", programID, studentID).
		Where("status IN ?", []string{model.ApplicationStatusPending, model.ApplicationStatusApproved}).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *model.ProgramApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProgramApplication{}).Error
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.ProgramApplication, error) {
	var apps []model.ProgramApplication
	err := r.db.WithContext(ctx).
		Preload("Program").
		Where("student_id = ?", studentID).
		Order("applied_date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepo) ListByProgram(ctx context.Context, programID string) ([]model.ProgramApplication, error) {
	var apps []model.ProgramApplication
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("program_id = ?", programID).
		Order("applied_date ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// CountActiveByProgram 활성(대기/승인) 신청 수. 정원 표시에 사용한다.
func (r *applicationRepo) CountActiveByProgram(ctx context.Context, programID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProgramApplication{}).
		Where("program_id = ?", programID).
		Where("status IN ?", []string{model.ApplicationStatusPending, model.ApplicationStatusApproved}).
		Count(&count).Error
	return count, err
}

// CountEnrolledByProgram 거부를 제외한 신청 수 (대기/승인/이수완료)
// 프로그램 목록 내보내기의 신청자/여석 집계에 사용한다.
func (r *applicationRepo) CountEnrolledByProgram(ctx context.Context, programID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProgramApplication{}).
		Where("program_id = ?", programID).
		Where("status IN ?", []string{
			model.ApplicationStatusPending,
			model.ApplicationStatusApproved,
			model.ApplicationStatusCompleted,
		}).
		Count(&count).Error
	return count, err
}
