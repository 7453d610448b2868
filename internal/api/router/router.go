package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/api/handler"
	"github.com/leehwangjae/student-success-system-v2/internal/api/middleware"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	"github.com/leehwangjae/student-success-system-v2/pkg/redis"
)

// requestBodyLimit 전역 본문 상한. 첨부가 data URL 로 실리므로 업로드 상한보다 크게
const requestBodyLimit = 32 << 20 // 32MB

// Setup Gin 라우터 초기화
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 전역 미들웨어 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(requestBodyLimit))

	// ── 헬스 체크 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RoleAuth(model.RoleAdmin, model.RoleMaster)
	masterOnly := middleware.RoleAuth(model.RoleMaster)
	studentOnly := middleware.RoleAuth(model.RoleStudent)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 인증 모듈 (비로그인)
		auth := v1.Group("/auth")
		{
			// 로그인/가입 시도는 속도 제한
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/signup", loginLimit, h.Auth.Signup)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 로그인 필요 라우트
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 인증 모듈 (로그인 후)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 가입 승인 (마스터)
			users := authorized.Group("/users", masterOnly)
			{
				users.GET("/pending", h.Auth.ListPendingUsers)
				users.POST("/:id/approve", h.Auth.ApproveUser)
				users.POST("/:id/reject", h.Auth.RejectUser)
			}

			// 학생 관리 (관리자)
			students := authorized.Group("/students", adminOnly)
			{
				students.GET("", h.Student.List)
				students.GET("/:id", h.Student.Get)
				students.POST("", h.Student.Create)
				students.PUT("/:id", h.Student.Update)
				students.PUT("/:id/scores", h.Student.UpdateScores)
				students.DELETE("/:id", h.Student.Delete)
				students.POST("/import", h.Student.Import)
			}

			// 프로그램
			programs := authorized.Group("/programs")
			{
				programs.GET("", h.Program.List)
				programs.GET("/:id", h.Program.Get)
				programs.POST("", adminOnly, h.Program.Create)
				programs.PUT("/:id", adminOnly, h.Program.Update)
				programs.DELETE("/:id", adminOnly, h.Program.Delete)
				programs.GET("/:id/applicants", adminOnly, h.Application.ListByProgram)
			}

			// 공지사항
			notices := authorized.Group("/notices")
			{
				notices.GET("", h.Notice.List)
				notices.GET("/:id", h.Notice.Get)
				notices.POST("", adminOnly, h.Notice.Create)
				notices.PUT("/:id", adminOnly, h.Notice.Update)
				notices.DELETE("/:id", adminOnly, h.Notice.Delete)
			}

			// 프로그램 신청
			applications := authorized.Group("/applications")
			{
				applications.POST("", studentOnly, h.Application.Apply)
				applications.GET("/my", studentOnly, h.Application.ListMine)
				applications.DELETE("/:id", studentOnly, h.Application.Cancel)
				applications.POST("/:id/approve", adminOnly, h.Application.Approve)
				applications.POST("/:id/reject", adminOnly, h.Application.Reject)
				applications.POST("/:id/complete", adminOnly, h.Application.Complete)
			}

			// 핵심 교과목 카탈로그 + 이수 자가보고
			coreCourses := authorized.Group("/core-courses")
			{
				coreCourses.GET("", h.CoreCourse.List)
				coreCourses.POST("", adminOnly, h.CoreCourse.Create)
				coreCourses.PUT("/:id", adminOnly, h.CoreCourse.Update)
				coreCourses.DELETE("/:id", adminOnly, h.CoreCourse.Delete)

				coreCourses.GET("/submissions/my", studentOnly, h.Submission.GetMine)
				coreCourses.POST("/submissions", studentOnly, h.Submission.Submit)
				coreCourses.GET("/submissions", adminOnly, h.Submission.ListReview)
				coreCourses.POST("/submissions/:id/approve", adminOnly, h.Submission.Approve)
				coreCourses.POST("/submissions/:id/reject", adminOnly, h.Submission.Reject)
			}

			// 내보내기 (관리자)
			exports := authorized.Group("/exports", adminOnly)
			{
				exports.GET("/students", h.Export.StudentsCSV)
				exports.GET("/students/xlsx", h.Export.StudentsXLSX)
				exports.GET("/students/template", h.Export.StudentTemplateCSV)
				exports.GET("/programs", h.Export.ProgramsXLSX)
				exports.GET("/programs/:id/applicants", h.Export.ApplicantsCSV)
				exports.GET("/core-courses", h.Export.CoreCoursesXLSX)
			}
		}
	}

	return r
}
