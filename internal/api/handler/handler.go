package handler

import "github.com/leehwangjae/student-success-system-v2/internal/service"

// Handler 모든 Handler 의 집합 진입점
type Handler struct {
	Auth        *AuthHandler
	Student     *StudentHandler
	Program     *ProgramHandler
	Notice      *NoticeHandler
	Application *ApplicationHandler
	CoreCourse  *CoreCourseHandler
	Submission  *SubmissionHandler
	Export      *ExportHandler
}

// NewHandler Handler 집합 생성
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Student:     NewStudentHandler(svc.Student),
		Program:     NewProgramHandler(svc.Program),
		Notice:      NewNoticeHandler(svc.Notice),
		Application: NewApplicationHandler(svc.Application),
		CoreCourse:  NewCoreCourseHandler(svc.CoreCourse),
		Submission:  NewSubmissionHandler(svc.Submission),
		Export:      NewExportHandler(svc.Export),
	}
}
