package service

import (
	"go.uber.org/zap"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	"github.com/leehwangjae/student-success-system-v2/pkg/redis"
)

// Service 모든 Service 의 집합 진입점
type Service struct {
	Auth        AuthService
	Student     StudentService
	Program     ProgramService
	Notice      NoticeService
	Application ApplicationService
	CoreCourse  CoreCourseService
	Submission  SubmissionService
	Export      ExportService
}

// NewService Service 집합 생성
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Student:     NewStudentService(repo, logger),
		Program:     NewProgramService(cfg, repo, logger),
		Notice:      NewNoticeService(cfg, repo, logger),
		Application: NewApplicationService(cfg, repo, logger),
		CoreCourse:  NewCoreCourseService(repo, logger),
		Submission:  NewSubmissionService(cfg, repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
