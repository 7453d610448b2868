package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
)

// ── 학생 모듈 업무 오류 ──

var (
	ErrStudentNotFound = errors.New("학생을 찾을 수 없습니다")
	ErrStudentIDTaken  = errors.New("이미 등록된 학번입니다")
	ErrImportNoData    = errors.New("데이터가 없습니다")
	ErrImportBadHeader = errors.New("필수 컬럼이 누락되었습니다: 학번, 이름, 학과, 이메일, 전화번호")
)

// StudentService 학생 관리 업무 인터페이스 (관리자)
type StudentService interface {
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	UpdateScores(ctx context.Context, id string, req *dto.UpdateStudentScoresRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportStudentsResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService StudentService 인스턴스 생성
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	filters := &repository.StudentListFilters{
		Field:   req.Field,
		Keyword: req.Keyword,
	}
	students, total, err := s.repo.User.ListStudents(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("학생 목록 조회 실패", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentResponse(&students[i]))
	}
	return result, total, nil
}

func (s *studentService) Get(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// Create 관리자 직접 등록. 가입 승인 절차 없이 곧바로 approved 상태가 된다
func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	// 학번이 로그인 아이디를 겸한다
	if _, err := s.repo.User.GetByUsername(ctx, req.StudentID); err == nil {
		return nil, ErrStudentIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.User{
		Username:     req.StudentID,
		PasswordHash: string(hash),
		Name:         req.Name,
		StudentID:    req.StudentID,
		Department:   req.Department,
		Field:        model.DepartmentField(req.Department),
		Email:        req.Email,
		Phone:        req.Phone,
		Grade:        req.Grade,
		Memo:         req.Memo,
		AccountType:  model.RoleStudent,
		Status:       model.UserStatusApproved,
	}
	if err := s.repo.User.Create(ctx, student); err != nil {
		s.logger.Error("학생 등록 실패", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Department != nil {
		student.Department = *req.Department
		student.Field = model.DepartmentField(*req.Department)
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if req.Memo != nil {
		student.Memo = *req.Memo
	}

	if err := s.repo.User.Update(ctx, student); err != nil {
		s.logger.Error("학생 정보 수정 실패", zap.Error(err))
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// UpdateScores 세 점수 버킷과 이력 목록을 통째로 교체 (관리자 점수 조정)
func (s *studentService) UpdateScores(ctx context.Context, id string, req *dto.UpdateStudentScoresRequest) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	student.NonCurricularScore = req.NonCurricularScore
	student.CoreSubjectScore = req.CoreSubjectScore
	student.IndustryScore = req.IndustryScore
	student.NonCurricularHistory = toHistoryModel(req.NonCurricularHistory)
	student.CoreSubjectHistory = toHistoryModel(req.CoreSubjectHistory)
	student.IndustryHistory = toHistoryModel(req.IndustryHistory)

	if err := s.repo.User.Update(ctx, student); err != nil {
		s.logger.Error("학생 점수 조정 실패", zap.Error(err))
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getStudent(ctx, id); err != nil {
		return err
	}
	return s.repo.User.Delete(ctx, id)
}

// ═══════════════════════════════════════════════════════════
// ImportCSV 학생 명단 일괄 등록
// ═══════════════════════════════════════════════════════════
//
// 양식: 헤더 행에 학번/이름/학과/이메일/전화번호(필수), 비고(선택).
// 컬럼 순서는 헤더명 기준으로 매핑하므로 자유다.
// 이미 등록된 학번은 건너뛰고, 분야는 학과명으로 판정한다.
// 초기 비밀번호는 학번과 동일하게 부여한다.

func (s *studentService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportStudentsResponse, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 선택 컬럼 허용
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV 파싱 실패: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrImportNoData
	}

	// 헤더 매핑 (BOM 제거)
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"학번", "이름", "학과", "이메일", "전화번호"} {
		if _, ok := idx[required]; !ok {
			return nil, ErrImportBadHeader
		}
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	resp := &dto.ImportStudentsResponse{Total: len(records) - 1}
	for rowNum, row := range records[1:] {
		studentID := cell(row, "학번")
		name := cell(row, "이름")
		department := cell(row, "학과")
		if studentID == "" || name == "" {
			resp.Errors = append(resp.Errors, dto.ImportStudentError{
				Row:    rowNum + 2,
				Reason: "학번 또는 이름이 비어 있습니다",
			})
			continue
		}

		// 기존 학번은 건너뛴다
		if _, err := s.repo.User.GetByUsername(ctx, studentID); err == nil {
			resp.Skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(studentID), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		student := &model.User{
			Username:     studentID,
			PasswordHash: string(hash),
			Name:         name,
			StudentID:    studentID,
			Department:   department,
			Field:        model.DepartmentField(department),
			Email:        cell(row, "이메일"),
			Phone:        cell(row, "전화번호"),
			Memo:         cell(row, "비고"),
			AccountType:  model.RoleStudent,
			Status:       model.UserStatusApproved,
		}
		if err := s.repo.User.Create(ctx, student); err != nil {
			s.logger.Error("학생 일괄 등록 실패",
				zap.Int("row", rowNum+2), zap.Error(err))
			resp.Errors = append(resp.Errors, dto.ImportStudentError{
				Row:    rowNum + 2,
				Reason: "등록 실패",
			})
			continue
		}
		resp.Success++
	}

	s.logger.Info("학생 명단 일괄 등록",
		zap.Int("total", resp.Total),
		zap.Int("success", resp.Success),
		zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// ── 내부 헬퍼 ──

// getStudent 승인된 학생 계정만 조회 대상으로 한다
func (s *studentService) getStudent(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if user.AccountType != model.RoleStudent {
		return nil, ErrStudentNotFound
	}
	return user, nil
}

func toStudentResponse(u *model.User) dto.StudentResponse {
	return dto.StudentResponse{
		ID:                   u.ID,
		StudentID:            u.StudentID,
		Name:                 u.Name,
		Department:           u.Department,
		Field:                u.Field,
		Email:                u.Email,
		Phone:                u.Phone,
		Grade:                u.Grade,
		Memo:                 u.Memo,
		NonCurricularScore:   u.NonCurricularScore,
		CoreSubjectScore:     u.CoreSubjectScore,
		IndustryScore:        u.IndustryScore,
		Total:                u.Total(),
		NonCurricularHistory: toHistoryDTO(u.NonCurricularHistory),
		CoreSubjectHistory:   toHistoryDTO(u.CoreSubjectHistory),
		IndustryHistory:      toHistoryDTO(u.IndustryHistory),
	}
}

func toHistoryDTO(h model.ScoreHistory) []dto.ScoreHistoryEntry {
	result := make([]dto.ScoreHistoryEntry, 0, len(h))
	for _, e := range h {
		result = append(result, dto.ScoreHistoryEntry{
			ProgramID:    e.ProgramID,
			ProgramTitle: e.ProgramTitle,
			Score:        e.Score,
			Date:         e.Date,
		})
	}
	return result
}

func toHistoryModel(h []dto.ScoreHistoryEntry) model.ScoreHistory {
	result := make(model.ScoreHistory, 0, len(h))
	for _, e := range h {
		result = append(result, model.ScoreHistoryEntry{
			ProgramID:    e.ProgramID,
			ProgramTitle: e.ProgramTitle,
			Score:        e.Score,
			Date:         e.Date,
		})
	}
	return result
}
