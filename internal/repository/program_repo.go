package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// ProgramListFilters 프로그램 목록 필터
type ProgramListFilters struct {
	Field    string
	Status   string
	Category string
}

// ProgramRepository 프로그램 데이터 접근 인터페이스
type ProgramRepository interface {
	Create(ctx context.Context, program *model.Program) error
	GetByID(ctx context.Context, id string) (*model.Program, error)
	Update(ctx context.Context, program *model.Program) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ProgramListFilters, offset, limit int) ([]model.Program, int64, error)
	ListAll(ctx context.Context, filters *ProgramListFilters) ([]model.Program, error)
}

// programRepo ProgramRepository 의 GORM 구현
type programRepo struct {
	db *gorm.DB
}

// NewProgramRepo ProgramRepository 인스턴스 생성
func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) Create(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *programRepo) GetByID(ctx context.Context, id string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) Update(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

func (r *programRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Program{}).Error
}

func (r *programRepo) query(ctx context.Context, filters *ProgramListFilters) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Program{})
	if filters != nil {
		if filters.Field != "" && filters.Field != "전체" {
			db = db.Where("field = ?", filters.Field)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Category != "" {
			db = db.Where("category = ?", filters.Category)
		}
	}
	return db
}

func (r *programRepo) List(ctx context.Context, filters *ProgramListFilters, offset, limit int) ([]model.Program, int64, error) {
	var programs []model.Program
	var total int64

	db := r.query(ctx, filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&programs).Error; err != nil {
		return nil, 0, err
	}

	return programs, total, nil
}

// ListAll 페이지네이션 없이 전체 조회 (내보내기용)
func (r *programRepo) ListAll(ctx context.Context, filters *ProgramListFilters) ([]model.Program, error) {
	var programs []model.Program
	err := r.query(ctx, filters).
		Order("created_at DESC").
		Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}
