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

// ── 프로그램 모듈 업무 오류 ──

var ErrProgramNotFound = errors.New("프로그램을 찾을 수 없습니다")

// ProgramService 프로그램 업무 인터페이스
type ProgramService interface {
	List(ctx context.Context, req *dto.ProgramListRequest) ([]dto.ProgramResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.ProgramResponse, error)
	Create(ctx context.Context, req *dto.SaveProgramRequest) (*dto.ProgramResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveProgramRequest) (*dto.ProgramResponse, error)
	Delete(ctx context.Context, id string) error
}

type programService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgramService ProgramService 인스턴스 생성
func NewProgramService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ProgramService {
	return &programService{cfg: cfg, repo: repo, logger: logger}
}

func (s *programService) List(ctx context.Context, req *dto.ProgramListRequest) ([]dto.ProgramResponse, int64, error) {
	filters := &repository.ProgramListFilters{
		Field:    req.Field,
		Status:   req.Status,
		Category: req.Category,
	}
	programs, total, err := s.repo.Program.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("프로그램 목록 조회 실패", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		resp := toProgramResponse(&programs[i])
		count, err := s.repo.Application.CountActiveByProgram(ctx, programs[i].ID)
		if err != nil {
			return nil, 0, err
		}
		resp.ApplicantCount = int(count)
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *programService) Get(ctx context.Context, id string) (*dto.ProgramResponse, error) {
	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	resp := toProgramResponse(program)
	count, err := s.repo.Application.CountActiveByProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.ApplicantCount = int(count)
	return &resp, nil
}

func (s *programService) Create(ctx context.Context, req *dto.SaveProgramRequest) (*dto.ProgramResponse, error) {
	program := &model.Program{}
	if err := s.applyRequest(program, req); err != nil {
		return nil, err
	}
	if err := s.repo.Program.Create(ctx, program); err != nil {
		s.logger.Error("프로그램 생성 실패", zap.Error(err))
		return nil, err
	}
	resp := toProgramResponse(program)
	return &resp, nil
}

func (s *programService) Update(ctx context.Context, id string, req *dto.SaveProgramRequest) (*dto.ProgramResponse, error) {
	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if err := s.applyRequest(program, req); err != nil {
		return nil, err
	}
	if err := s.repo.Program.Update(ctx, program); err != nil {
		s.logger.Error("프로그램 수정 실패", zap.Error(err))
		return nil, err
	}
	resp := toProgramResponse(program)
	return &resp, nil
}

// Delete 하드 삭제. 기존 신청 행은 남는다
func (s *programService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Program.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return s.repo.Program.Delete(ctx, id)
}

// ── 내부 헬퍼 ──

func (s *programService) applyRequest(program *model.Program, req *dto.SaveProgramRequest) error {
	attached, err := validateAttachments(req.AttachedFiles, s.cfg.Upload.MaxTranscriptSize)
	if err != nil {
		return err
	}
	if req.ImageURL != "" {
		if err := validateImage(req.ImageURL, s.cfg.Upload.MaxImageSize); err != nil {
			return err
		}
	}

	program.Title = req.Title
	program.Category = req.Category
	program.Field = req.Field
	program.Status = req.Status
	program.MaxParticipants = req.MaxParticipants
	program.RequiresFile = req.RequiresFile
	program.Score = req.Score
	program.Description = req.Description
	program.ImageURL = req.ImageURL
	program.AttachedFiles = datatypes.NewJSONSlice(attached)
	program.StartDate = parseDatePtr(req.StartDate)
	program.EndDate = parseDatePtr(req.EndDate)
	return nil
}

func toProgramResponse(p *model.Program) dto.ProgramResponse {
	return dto.ProgramResponse{
		ID:              p.ID,
		Title:           p.Title,
		Category:        p.Category,
		Field:           p.Field,
		StartDate:       formatDatePtr(p.StartDate),
		EndDate:         formatDatePtr(p.EndDate),
		Status:          p.Status,
		MaxParticipants: p.MaxParticipants,
		RequiresFile:    p.RequiresFile,
		Score:           p.Score,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		AttachedFiles:   toAttachmentsDTO(p.AttachedFiles),
	}
}

func toAttachmentsDTO(files []model.FileAttachment) []dto.FileAttachmentPayload {
	result := make([]dto.FileAttachmentPayload, 0, len(files))
	for _, f := range files {
		result = append(result, dto.FileAttachmentPayload{
			Name:    f.Name,
			Size:    f.Size,
			Type:    f.Type,
			DataURL: f.DataURL,
		})
	}
	return result
}

// parseDatePtr YYYY-MM-DD 문자열을 날짜 포인터로 변환. 빈 값이나 형식 오류는 nil
func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
