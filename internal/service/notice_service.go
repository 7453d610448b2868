package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
)

// ── 공지사항 모듈 업무 오류 ──

var ErrNoticeNotFound = errors.New("공지사항을 찾을 수 없습니다")

// NoticeService 공지사항 업무 인터페이스
type NoticeService interface {
	List(ctx context.Context, req *dto.NoticeListRequest) ([]dto.NoticeResponse, int64, error)
	// Get 상세 조회 시 조회수를 1 증가시킨다
	Get(ctx context.Context, id string) (*dto.NoticeResponse, error)
	Create(ctx context.Context, authorID string, req *dto.SaveNoticeRequest) (*dto.NoticeResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveNoticeRequest) (*dto.NoticeResponse, error)
	Delete(ctx context.Context, id string) error
}

type noticeService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNoticeService NoticeService 인스턴스 생성
func NewNoticeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) NoticeService {
	return &noticeService{cfg: cfg, repo: repo, logger: logger}
}

func (s *noticeService) List(ctx context.Context, req *dto.NoticeListRequest) ([]dto.NoticeResponse, int64, error) {
	notices, total, err := s.repo.Notice.List(ctx, req.Field, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("공지 목록 조회 실패", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		result = append(result, toNoticeResponse(&notices[i]))
	}
	return result, total, nil
}

func (s *noticeService) Get(ctx context.Context, id string) (*dto.NoticeResponse, error) {
	notice, err := s.repo.Notice.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}

	if err := s.repo.Notice.IncrementViews(ctx, id); err != nil {
		// 조회수 증가 실패가 상세 조회를 막지는 않는다
		s.logger.Warn("조회수 증가 실패", zap.String("notice_id", id), zap.Error(err))
	} else {
		notice.Views++
	}

	resp := toNoticeResponse(notice)
	return &resp, nil
}

// Create 공지 생성. 작성자명은 작성 계정의 이름으로 기록한다
func (s *noticeService) Create(ctx context.Context, authorID string, req *dto.SaveNoticeRequest) (*dto.NoticeResponse, error) {
	author := "관리자"
	if user, err := s.repo.User.GetByID(ctx, authorID); err == nil {
		author = user.Name
	}

	notice := &model.Notice{Author: author}
	if err := s.applyRequest(notice, req); err != nil {
		return nil, err
	}
	if err := s.repo.Notice.Create(ctx, notice); err != nil {
		s.logger.Error("공지 생성 실패", zap.Error(err))
		return nil, err
	}
	resp := toNoticeResponse(notice)
	return &resp, nil
}

func (s *noticeService) Update(ctx context.Context, id string, req *dto.SaveNoticeRequest) (*dto.NoticeResponse, error) {
	notice, err := s.repo.Notice.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	if err := s.applyRequest(notice, req); err != nil {
		return nil, err
	}
	if err := s.repo.Notice.Update(ctx, notice); err != nil {
		s.logger.Error("공지 수정 실패", zap.Error(err))
		return nil, err
	}
	resp := toNoticeResponse(notice)
	return &resp, nil
}

func (s *noticeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Notice.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}
	return s.repo.Notice.Delete(ctx, id)
}

// ── 내부 헬퍼 ──

func (s *noticeService) applyRequest(notice *model.Notice, req *dto.SaveNoticeRequest) error {
	attached, err := validateAttachments(req.AttachedFiles, s.cfg.Upload.MaxTranscriptSize)
	if err != nil {
		return err
	}
	if req.ImageURL != "" {
		if err := validateImage(req.ImageURL, s.cfg.Upload.MaxImageSize); err != nil {
			return err
		}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return err
	}

	notice.Title = req.Title
	notice.Field = req.Field
	notice.Content = req.Content
	notice.Date = date
	notice.ImageURL = req.ImageURL
	notice.AttachedFiles = datatypes.NewJSONSlice(attached)
	return nil
}

func toNoticeResponse(n *model.Notice) dto.NoticeResponse {
	return dto.NoticeResponse{
		ID:            n.ID,
		Title:         n.Title,
		Field:         n.Field,
		Content:       n.Content,
		Author:        n.Author,
		Date:          n.Date.Format("2006-01-02"),
		Views:         n.Views,
		ImageURL:      n.ImageURL,
		AttachedFiles: toAttachmentsDTO(n.AttachedFiles),
	}
}
