package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// StudentListFilters 학생 목록 필터
type StudentListFilters struct {
	Field   string // 빈 값이면 전체; "기타" 는 지정 분야 외 전부
	Keyword string // 학번/이름 부분 일치
}

// UserRepository 사용자 데이터 접근 인터페이스
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	ListStudents(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.User, int64, error)
	ListStudentsAll(ctx context.Context, filters *StudentListFilters) ([]model.User, error)
	ListPending(ctx context.Context) ([]model.User, error)
}

// userRepo UserRepository 의 GORM 구현
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo UserRepository 인스턴스 생성
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.User{}).Error
}

// studentsQuery 승인된 학생 계정 기준 공통 쿼리
func (r *userRepo) studentsQuery(ctx context.Context, filters *StudentListFilters) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.User{}).
		Where("account_type = ?", model.RoleStudent).
		Where("status = ?", model.UserStatusApproved)

	if filters != nil {
		switch filters.Field {
		case "", "전체":
			// 필터 없음
		case model.FieldEtc:
			db = db.Where("field NOT IN ?", []string{model.FieldBio, model.FieldSemicon, model.FieldLogistics})
		default:
			db = db.Where("field = ?", filters.Field)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("student_id ILIKE ? OR name ILIKE ?", kw, kw)
		}
	}
	return db
}

func (r *userRepo) ListStudents(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.studentsQuery(ctx, filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("student_id ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListStudentsAll 페이지네이션 없이 전체 조회 (내보내기용)
func (r *userRepo) ListStudentsAll(ctx context.Context, filters *StudentListFilters) ([]model.User, error) {
	var users []model.User
	err := r.studentsQuery(ctx, filters).
		Order("student_id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListPending 승인 대기 계정 전체 조회 (마스터 승인 화면)
func (r *userRepo) ListPending(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("status = ?", model.UserStatusPending).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
