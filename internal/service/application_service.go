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

// ── 프로그램 신청 모듈 업무 오류 ──

var (
	ErrAlreadyApplied       = errors.New("이미 신청한 프로그램입니다.")
	ErrProgramNotRecruiting = errors.New("모집중인 프로그램이 아닙니다")
	ErrApplicationNotFound  = errors.New("신청 내역을 찾을 수 없습니다")
	ErrFileRequired         = errors.New("첨부 파일이 필요한 프로그램입니다")
	ErrNotPendingApp        = errors.New("대기중인 신청만 처리할 수 있습니다")
	ErrNotApprovedApp       = errors.New("승인된 신청만 이수 완료 처리할 수 있습니다")
	ErrCancelNotPending     = errors.New("대기중인 신청만 취소할 수 있습니다")
	ErrNotOwnApplication    = errors.New("본인의 신청만 취소할 수 있습니다")
)

// ApplicationService 프로그램 신청 업무 인터페이스
//
// 상태 기계: pending → approved → completed, pending → rejected(종결).
// 이수 완료 시점에만 점수가 적립된다.
type ApplicationService interface {
	Apply(ctx context.Context, studentID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	Cancel(ctx context.Context, studentID, applicationID string) error
	ListMine(ctx context.Context, studentID string) ([]dto.ApplicationResponse, error)
	ListByProgram(ctx context.Context, programID string) ([]dto.ApplicantResponse, error)
	Approve(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error)
	Reject(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error)
	Complete(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService ApplicationService 인스턴스 생성
func NewApplicationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{cfg: cfg, repo: repo, logger: logger}
}

// Apply 프로그램 신청. 모집중 프로그램 + 활성 신청 없음이 전제조건
func (s *applicationService) Apply(ctx context.Context, studentID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	// 1. 프로그램 확인
	program, err := s.repo.Program.GetByID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.Status != model.ProgramStatusRecruiting {
		return nil, ErrProgramNotRecruiting
	}

	// 2. 중복 신청 확인 (대기/승인 신청이 있으면 거부)
	if _, err := s.repo.Application.GetActiveByProgramAndStudent(ctx, req.ProgramID, studentID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. 첨부 파일 확인
	if program.RequiresFile && len(req.AttachedFiles) == 0 {
		return nil, ErrFileRequired
	}
	attached, err := validateAttachments(req.AttachedFiles, s.cfg.Upload.MaxTranscriptSize)
	if err != nil {
		return nil, err
	}

	// 4. 신청 생성
	app := &model.ProgramApplication{
		ProgramID:     req.ProgramID,
		StudentID:     studentID,
		Status:        model.ApplicationStatusPending,
		AppliedDate:   time.Now(),
		AttachedFiles: datatypes.NewJSONSlice(attached),
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("프로그램 신청 실패", zap.Error(err))
		return nil, err
	}
	app.Program = program

	s.logger.Info("프로그램 신청",
		zap.String("program_id", req.ProgramID),
		zap.String("student_id", studentID))

	resp := toApplicationResponse(app)
	return &resp, nil
}

// Cancel 신청 취소. 본인의 대기중 신청만 가능하며 행을 삭제한다
func (s *applicationService) Cancel(ctx context.Context, studentID, applicationID string) error {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.StudentID != studentID {
		return ErrNotOwnApplication
	}
	if app.Status != model.ApplicationStatusPending {
		return ErrCancelNotPending
	}
	return s.repo.Application.Delete(ctx, applicationID)
}

// ListMine 내 신청 목록. 이수완료 건만 제외되며 거부 건은 학생에게 보인다
func (s *applicationService) ListMine(ctx context.Context, studentID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.repo.Application.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("신청 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		if apps[i].Status == model.ApplicationStatusCompleted {
			continue
		}
		result = append(result, toApplicationResponse(&apps[i]))
	}
	return result, nil
}

// ListByProgram 프로그램별 신청자 명단 (관리자). 이수완료 건만 제외한다
func (s *applicationService) ListByProgram(ctx context.Context, programID string) ([]dto.ApplicantResponse, error) {
	apps, err := s.repo.Application.ListByProgram(ctx, programID)
	if err != nil {
		s.logger.Error("신청자 명단 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ApplicantResponse, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		if app.Status == model.ApplicationStatusCompleted {
			continue
		}
		row := dto.ApplicantResponse{
			ApplicationID: app.ID,
			Status:        app.Status,
			StatusLabel:   app.StatusLabel(),
			AppliedDate:   app.AppliedDate.Format("2006-01-02"),
			CompletedDate: formatDatePtr(app.CompletedDate),
		}
		if app.Student != nil {
			row.StudentID = app.Student.StudentID
			row.Name = app.Student.Name
			row.Department = app.Student.Department
			row.Field = app.Student.Field
			row.Email = app.Student.Email
			row.Phone = app.Student.Phone
		}
		result = append(result, row)
	}
	return result, nil
}

// Approve 신청 승인: pending → approved. 점수 변동 없음
func (s *applicationService) Approve(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != model.ApplicationStatusPending {
		return nil, ErrNotPendingApp
	}
	app.Status = model.ApplicationStatusApproved
	if err := s.repo.Application.Update(ctx, app); err != nil {
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// Reject 신청 거부: pending → rejected. 종결 상태, 점수 변동 없음
func (s *applicationService) Reject(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != model.ApplicationStatusPending {
		return nil, ErrNotPendingApp
	}
	app.Status = model.ApplicationStatusRejected
	if err := s.repo.Application.Update(ctx, app); err != nil {
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Complete 이수 완료 처리 및 점수 적립
// ═══════════════════════════════════════════════════════════
//
// approved 상태에서만 가능. 신청 갱신과 점수 적립을 한 트랜잭션으로 묶어
// 완료 표시는 됐는데 점수는 빠지는 부분 실패를 차단한다.
// 적립 버킷은 프로그램 분류가 결정한다 (비교과/교과/그 외→산학).

func (s *applicationService) Complete(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error) {
	var result *model.ProgramApplication

	err := s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		app, err := txRepo.Application.GetByID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if app.Status != model.ApplicationStatusApproved {
			return ErrNotApprovedApp
		}
		if app.Program == nil {
			return ErrProgramNotFound
		}

		// 1. 신청 상태 갱신
		now := time.Now()
		app.Status = model.ApplicationStatusCompleted
		app.CompletedDate = &now
		if err := txRepo.Application.Update(ctx, app); err != nil {
			return err
		}

		// 2. 점수 적립 (가산) + 이력 1건 추가
		student, err := txRepo.User.GetByID(ctx, app.StudentID)
		if err != nil {
			return err
		}
		student.Credit(model.BucketForCategory(app.Program.Category), model.ScoreHistoryEntry{
			ProgramID:    app.ProgramID,
			ProgramTitle: app.Program.Title,
			Score:        app.Program.Score,
			Date:         now.Format("2006-01-02"),
		})
		if err := txRepo.User.Update(ctx, student); err != nil {
			return err
		}

		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("이수 완료 처리",
		zap.String("application_id", applicationID),
		zap.String("program_id", result.ProgramID))

	resp := toApplicationResponse(result)
	return &resp, nil
}

// ── 내부 헬퍼 ──

func (s *applicationService) getApplication(ctx context.Context, id string) (*model.ProgramApplication, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

func toApplicationResponse(a *model.ProgramApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:            a.ID,
		ProgramID:     a.ProgramID,
		StudentID:     a.StudentID,
		Status:        a.Status,
		StatusLabel:   a.StatusLabel(),
		AppliedDate:   a.AppliedDate.Format("2006-01-02"),
		CompletedDate: formatDatePtr(a.CompletedDate),
		AttachedFiles: toAttachmentsDTO(a.AttachedFiles),
	}
	if a.Program != nil {
		resp.ProgramTitle = a.Program.Title
	}
	if a.Student != nil {
		resp.StudentName = a.Student.Name
	}
	return resp
}
