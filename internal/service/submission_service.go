package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
)

// ── 이수 자가보고 모듈 업무 오류 ──

var (
	ErrSubmissionNotFound   = errors.New("제출 내역을 찾을 수 없습니다")
	ErrNoCoursesChecked     = errors.New("이수한 과목을 1개 이상 선택해주세요")
	ErrTranscriptRequired   = errors.New("성적표 파일을 첨부해주세요")
	ErrSubmissionLocked     = errors.New("검토중이거나 승인된 제출은 수정할 수 없습니다")
	ErrSubmissionNotPending = errors.New("검토중인 제출만 처리할 수 있습니다")
	ErrReasonRequired       = errors.New("반려 사유를 입력해주세요")
)

// SubmissionService 핵심 교과목 이수 자가보고 업무 인터페이스
//
// 상태 기계: (미제출) → pending → approved, pending → rejected → pending(재제출).
// 학생당 1행이며 재제출은 같은 행을 덮어쓴다.
type SubmissionService interface {
	// GetMine 내 제출 현황. 제출 이력이 없으면 (nil, nil)
	GetMine(ctx context.Context, studentID string) (*dto.SubmissionResponse, error)
	Submit(ctx context.Context, studentID string, req *dto.SubmitCoreCoursesRequest) (*dto.SubmissionResponse, error)
	ListReview(ctx context.Context, field, department, status string) ([]dto.SubmissionReviewRow, error)
	Approve(ctx context.Context, submissionID, reviewerID string) (*dto.SubmissionResponse, error)
	Reject(ctx context.Context, submissionID, reviewerID string, req *dto.RejectSubmissionRequest) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService SubmissionService 인스턴스 생성
func NewSubmissionService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{cfg: cfg, repo: repo, logger: logger}
}

func (s *submissionService) GetMine(ctx context.Context, studentID string) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Submit 이수 현황 제출 (upsert)
// ═══════════════════════════════════════════════════════════
//
// 서버 측 재검증:
//   - 체크된 과목 1개 이상
//   - 학수번호 중복은 1과목으로 계산
//   - 점수는 min(과목 수, 10) × 5, 상한 50점
//   - 10과목 초과분도 목록에는 남기되 점수에는 반영되지 않는다
//   - 성적표 파일 필수 (PDF/JPEG/PNG, 크기 제한)
//
// pending/approved 상태의 기존 제출은 잠긴다. rejected 에서만 재제출 가능하며
// 같은 행을 덮어쓰고 상태를 pending 으로 되돌린다.

func (s *submissionService) Submit(ctx context.Context, studentID string, req *dto.SubmitCoreCoursesRequest) (*dto.SubmissionResponse, error) {
	// 1. 체크된 과목 추출
	var checked []dto.CompletedCoursePayload
	for _, c := range req.CompletedCourses {
		if c.IsCompleted {
			checked = append(checked, c)
		}
	}
	if len(checked) == 0 {
		return nil, ErrNoCoursesChecked
	}

	// 2. 학수번호 기준 중복 제거 (중복은 1과목으로 계산)
	seen := make(map[string]bool, len(checked))
	courses := make(model.CompletedCourseList, 0, len(checked))
	for _, c := range checked {
		code := strings.TrimSpace(c.CourseCode)
		if seen[code] {
			continue
		}
		seen[code] = true
		courses = append(courses, model.CompletedCourse{
			CourseID:    c.CourseID,
			CourseCode:  code,
			CourseName:  c.CourseName,
			CourseType:  c.CourseType,
			IsCompleted: true,
		})
	}

	// 3. 카탈로그 순서(order_index, 과목명)로 정렬
	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.sortByCatalogOrder(ctx, student, courses); err != nil {
		return nil, err
	}

	// 4. 점수 계산: 과목당 5점, 10과목 상한
	counted := len(courses)
	if counted > model.MaxCourses {
		counted = model.MaxCourses
	}
	totalScore := counted * model.PointsPerCourse

	// 5. 성적표 검증
	if req.TranscriptFile == "" {
		return nil, ErrTranscriptRequired
	}
	if err := validateTranscript(req.TranscriptFile, req.TranscriptFileSize, s.cfg.Upload.MaxTranscriptSize); err != nil {
		return nil, err
	}

	// 6. upsert: 없으면 생성, rejected 면 덮어쓰기, 그 외에는 잠김
	now := time.Now()
	sub, err := s.repo.Submission.GetByStudent(ctx, studentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		sub = &model.CoreCoursesSubmission{StudentID: studentID}
	} else if sub.Status != model.SubmissionStatusRejected {
		return nil, ErrSubmissionLocked
	}

	sub.CompletedCourses = courses
	sub.TotalCompletedCount = len(courses)
	sub.TotalScore = totalScore
	sub.TranscriptFile = req.TranscriptFile
	sub.TranscriptFileName = req.TranscriptFileName
	sub.TranscriptFileSize = req.TranscriptFileSize
	sub.Status = model.SubmissionStatusPending
	sub.RejectionReason = ""
	sub.SubmittedAt = &now
	sub.ReviewedAt = nil
	sub.ReviewedBy = nil

	if sub.ID == "" {
		err = s.repo.Submission.Create(ctx, sub)
	} else {
		err = s.repo.Submission.Update(ctx, sub)
	}
	if err != nil {
		s.logger.Error("이수 현황 제출 실패", zap.Error(err))
		return nil, err
	}

	s.logger.Info("이수 현황 제출",
		zap.String("student_id", studentID),
		zap.Int("courses", len(courses)),
		zap.Int("score", totalScore))

	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ListReview 학과별 제출 현황 (관리자 검토 화면). 미제출 학생도 행으로 포함한다
func (s *submissionService) ListReview(ctx context.Context, field, department, status string) ([]dto.SubmissionReviewRow, error) {
	return buildSubmissionReviewRows(ctx, s.repo, field, department, status)
}

// buildSubmissionReviewRows 학생 명단과 제출 행을 합쳐 검토 화면 행을 구성.
// 엑셀 내보내기에서도 같은 행을 사용한다
func buildSubmissionReviewRows(ctx context.Context, repo *repository.Repository, field, department, status string) ([]dto.SubmissionReviewRow, error) {
	students, err := repo.User.ListStudentsAll(ctx, &repository.StudentListFilters{Field: field})
	if err != nil {
		return nil, err
	}

	subs, err := repo.Submission.List(ctx, field, "")
	if err != nil {
		return nil, err
	}
	byStudent := make(map[string]*model.CoreCoursesSubmission, len(subs))
	for i := range subs {
		byStudent[subs[i].StudentID] = &subs[i]
	}

	result := make([]dto.SubmissionReviewRow, 0, len(students))
	for i := range students {
		student := &students[i]
		if department != "" && student.Department != department {
			continue
		}

		row := dto.SubmissionReviewRow{Student: toStudentResponse(student)}
		if sub, ok := byStudent[student.ID]; ok {
			resp := toSubmissionResponse(sub)
			row.Submission = &resp
		}

		// 상태 필터: 미제출은 빈 상태로 취급
		switch {
		case status == "" || status == "all":
		case status == "none":
			if row.Submission != nil {
				continue
			}
		case row.Submission == nil || row.Submission.Status != status:
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

// Approve 제출 승인. 학생의 핵심교과 점수를 제출 점수로 덮어쓴다 (가산 아님)
func (s *submissionService) Approve(ctx context.Context, submissionID, reviewerID string) (*dto.SubmissionResponse, error) {
	var result *model.CoreCoursesSubmission

	err := s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		sub, err := txRepo.Submission.GetByID(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}
		if sub.Status != model.SubmissionStatusPending {
			return ErrSubmissionNotPending
		}

		now := time.Now()
		sub.Status = model.SubmissionStatusApproved
		sub.RejectionReason = ""
		sub.ReviewedAt = &now
		sub.ReviewedBy = &reviewerID
		if err := txRepo.Submission.Update(ctx, sub); err != nil {
			return err
		}

		student, err := txRepo.User.GetByID(ctx, sub.StudentID)
		if err != nil {
			return err
		}
		student.CoreSubjectScore = sub.TotalScore
		if err := txRepo.User.Update(ctx, student); err != nil {
			return err
		}

		result = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("이수 제출 승인",
		zap.String("submission_id", submissionID),
		zap.Int("score", result.TotalScore))

	resp := toSubmissionResponse(result)
	return &resp, nil
}

// Reject 제출 반려. 사유 필수, 점수 변동 없음. 학생은 재제출할 수 있다
func (s *submissionService) Reject(ctx context.Context, submissionID, reviewerID string, req *dto.RejectSubmissionRequest) (*dto.SubmissionResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.Status != model.SubmissionStatusPending {
		return nil, ErrSubmissionNotPending
	}

	now := time.Now()
	sub.Status = model.SubmissionStatusRejected
	sub.RejectionReason = req.Reason
	sub.ReviewedAt = &now
	sub.ReviewedBy = &reviewerID
	if err := s.repo.Submission.Update(ctx, sub); err != nil {
		return nil, err
	}

	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ── 내부 헬퍼 ──

// sortByCatalogOrder 학생 소속 학과 카탈로그의 order_index, 과목명 순으로 정렬.
// 카탈로그에 없는 과목은 뒤로 보낸다
func (s *submissionService) sortByCatalogOrder(ctx context.Context, student *model.User, courses model.CompletedCourseList) error {
	catalog, err := s.repo.CoreCourse.ListByDepartment(ctx, student.Field, student.Department)
	if err != nil {
		return err
	}
	order := make(map[string]int, len(catalog))
	for i := range catalog {
		order[catalog[i].CourseCode] = i
	}

	sort.SliceStable(courses, func(i, j int) bool {
		oi, iok := order[courses[i].CourseCode]
		oj, jok := order[courses[j].CourseCode]
		if iok != jok {
			return iok
		}
		if iok && jok && oi != oj {
			return oi < oj
		}
		return courses[i].CourseName < courses[j].CourseName
	})
	return nil
}

func toSubmissionResponse(sub *model.CoreCoursesSubmission) dto.SubmissionResponse {
	courses := make([]dto.CompletedCoursePayload, 0, len(sub.CompletedCourses))
	for _, c := range sub.CompletedCourses {
		courses = append(courses, dto.CompletedCoursePayload{
			CourseID:    c.CourseID,
			CourseCode:  c.CourseCode,
			CourseName:  c.CourseName,
			CourseType:  c.CourseType,
			IsCompleted: c.IsCompleted,
		})
	}

	resp := dto.SubmissionResponse{
		ID:                  sub.ID,
		StudentID:           sub.StudentID,
		CompletedCourses:    courses,
		TotalCompletedCount: sub.TotalCompletedCount,
		TotalScore:          sub.TotalScore,
		Percentage:          sub.TotalScore * 100 / model.MaxCourseScore,
		TranscriptFileName:  sub.TranscriptFileName,
		TranscriptFileSize:  sub.TranscriptFileSize,
		Status:              sub.Status,
		StatusLabel:         model.SubmissionStatusLabel(sub.Status),
		RejectionReason:     sub.RejectionReason,
	}
	if sub.SubmittedAt != nil {
		resp.SubmittedAt = sub.SubmittedAt.Format(time.RFC3339)
	}
	if sub.ReviewedAt != nil {
		resp.ReviewedAt = sub.ReviewedAt.Format(time.RFC3339)
	}
	return resp
}
