package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
)

// ── 핵심 교과목 카탈로그 업무 오류 ──

var (
	ErrCourseNotFound  = errors.New("교과목을 찾을 수 없습니다")
	ErrCourseCodeTaken = errors.New("이미 등록된 학수번호입니다")
)

// CoreCourseService 핵심 교과목 카탈로그 업무 인터페이스 (관리자 CRUD)
type CoreCourseService interface {
	List(ctx context.Context, req *dto.CoreCourseListRequest) ([]dto.CoreCourseResponse, error)
	Create(ctx context.Context, req *dto.SaveCoreCourseRequest) (*dto.CoreCourseResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveCoreCourseRequest) (*dto.CoreCourseResponse, error)
	Delete(ctx context.Context, id string) error
}

type coreCourseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCoreCourseService CoreCourseService 인스턴스 생성
func NewCoreCourseService(repo *repository.Repository, logger *zap.Logger) CoreCourseService {
	return &coreCourseService{repo: repo, logger: logger}
}

func (s *coreCourseService) List(ctx context.Context, req *dto.CoreCourseListRequest) ([]dto.CoreCourseResponse, error) {
	courses, err := s.repo.CoreCourse.ListByDepartment(ctx, req.Field, req.Department)
	if err != nil {
		s.logger.Error("교과목 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CoreCourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCoreCourseResponse(&courses[i]))
	}
	return result, nil
}

func (s *coreCourseService) Create(ctx context.Context, req *dto.SaveCoreCourseRequest) (*dto.CoreCourseResponse, error) {
	// 분야+학과 내 학수번호 중복 금지
	if err := s.checkCodeTaken(ctx, req, ""); err != nil {
		return nil, err
	}

	course := &model.CoreCourse{
		Field:      req.Field,
		Department: req.Department,
		CourseName: req.CourseName,
		CourseCode: req.CourseCode,
		CourseType: req.CourseType,
		Credits:    req.Credits,
		OrderIndex: req.OrderIndex,
	}
	if err := s.repo.CoreCourse.Create(ctx, course); err != nil {
		s.logger.Error("교과목 등록 실패", zap.Error(err))
		return nil, err
	}
	resp := toCoreCourseResponse(course)
	return &resp, nil
}

func (s *coreCourseService) Update(ctx context.Context, id string, req *dto.SaveCoreCourseRequest) (*dto.CoreCourseResponse, error) {
	course, err := s.repo.CoreCourse.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if err := s.checkCodeTaken(ctx, req, id); err != nil {
		return nil, err
	}

	course.Field = req.Field
	course.Department = req.Department
	course.CourseName = req.CourseName
	course.CourseCode = req.CourseCode
	course.CourseType = req.CourseType
	course.Credits = req.Credits
	course.OrderIndex = req.OrderIndex

	if err := s.repo.CoreCourse.Update(ctx, course); err != nil {
		s.logger.Error("교과목 수정 실패", zap.Error(err))
		return nil, err
	}
	resp := toCoreCourseResponse(course)
	return &resp, nil
}

func (s *coreCourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.CoreCourse.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.repo.CoreCourse.Delete(ctx, id)
}

// ── 내부 헬퍼 ──

// checkCodeTaken 분야+학과 내 학수번호 중복 확인. excludeID 는 수정 대상 본인
func (s *coreCourseService) checkCodeTaken(ctx context.Context, req *dto.SaveCoreCourseRequest, excludeID string) error {
	existing, err := s.repo.CoreCourse.GetByCode(ctx, req.Field, req.Department, req.CourseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return ErrCourseCodeTaken
	}
	return nil
}

func toCoreCourseResponse(c *model.CoreCourse) dto.CoreCourseResponse {
	return dto.CoreCourseResponse{
		ID:         c.ID,
		Field:      c.Field,
		Department: c.Department,
		CourseName: c.CourseName,
		CourseCode: c.CourseCode,
		CourseType: c.CourseType,
		Credits:    c.Credits,
		OrderIndex: c.OrderIndex,
	}
}
