package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// NoticeRepository 공지사항 데이터 접근 인터페이스
type NoticeRepository interface {
	Create(ctx context.Context, notice *model.Notice) error
	GetByID(ctx context.Context, id string) (*model.Notice, error)
	Update(ctx context.Context, notice *model.Notice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, field string, offset, limit int) ([]model.Notice, int64, error)
	IncrementViews(ctx context.Context, id string) error
}

// noticeRepo NoticeRepository 의 GORM 구현
type noticeRepo struct {
	db *gorm.DB
}

// NewNoticeRepo NoticeRepository 인스턴스 생성
func NewNoticeRepo(db *gorm.DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) Create(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepo) GetByID(ctx context.Context, id string) (*model.Notice, error) {
	var notice model.Notice
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepo) Update(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).Save(notice).Error
}

func (r *noticeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Notice{}).Error
}

func (r *noticeRepo) List(ctx context.Context, field string, offset, limit int) ([]model.Notice, int64, error) {
	var notices []model.Notice
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Notice{})
	if field != "" && field != "전체" {
		// 공통 공지는 모든 분야에 노출
		db = db.Where("field = ? OR field = ?", field, model.FieldCommon)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("date DESC, created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, 0, err
	}

	return notices, total, nil
}

// IncrementViews 조회수 1 증가 (동시 조회에 안전하도록 단일 UPDATE)
func (r *noticeRepo) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Notice{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
