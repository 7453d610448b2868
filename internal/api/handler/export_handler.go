package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/internal/repository"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// ExportHandler 내보내기 모듈 HTTP 처리기 (관리자)
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler 생성
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// StudentsCSV 학생 목록 CSV 다운로드
// GET /api/v1/exports/students?field=바이오&keyword=
func (h *ExportHandler) StudentsCSV(c *gin.Context) {
	field := c.Query("field")
	filters := &repository.StudentListFilters{
		Field:   field,
		Keyword: c.Query("keyword"),
	}

	buf, filename, err := h.exportSvc.StudentsCSV(c.Request.Context(), filters, field)
	if err != nil {
		response.InternalError(c)
		return
	}
	writeDownload(c, buf, filename, "text/csv; charset=utf-8")
}

// StudentsXLSX 학생 목록 엑셀 다운로드
// GET /api/v1/exports/students/xlsx?field=바이오&keyword=
func (h *ExportHandler) StudentsXLSX(c *gin.Context) {
	filters := &repository.StudentListFilters{
		Field:   c.Query("field"),
		Keyword: c.Query("keyword"),
	}

	buf, filename, err := h.exportSvc.StudentsXLSX(c.Request.Context(), filters)
	if err != nil {
		response.InternalError(c)
		return
	}
	writeDownload(c, buf, filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// StudentTemplateCSV 학생 일괄 등록 양식 다운로드
// GET /api/v1/exports/students/template
func (h *ExportHandler) StudentTemplateCSV(c *gin.Context) {
	buf, filename, err := h.exportSvc.StudentTemplateCSV()
	if err != nil {
		response.InternalError(c)
		return
	}
	writeDownload(c, buf, filename, "text/csv; charset=utf-8")
}

// ApplicantsCSV 프로그램 신청자 명단 CSV 다운로드
// GET /api/v1/exports/programs/:id/applicants
func (h *ExportHandler) ApplicantsCSV(c *gin.Context) {
	buf, filename, err := h.exportSvc.ApplicantsCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	writeDownload(c, buf, filename, "text/csv; charset=utf-8")
}

// ProgramsXLSX 프로그램 목록 엑셀 다운로드
// GET /api/v1/exports/programs?field=바이오&status=모집중&category=비교과
func (h *ExportHandler) ProgramsXLSX(c *gin.Context) {
	filters := &repository.ProgramListFilters{
		Field:    c.Query("field"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	buf, filename, err := h.exportSvc.ProgramsXLSX(c.Request.Context(), filters)
	if err != nil {
		response.InternalError(c)
		return
	}
	writeDownload(c, buf, filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// CoreCoursesXLSX 학과별 이수 현황 엑셀 다운로드
// GET /api/v1/exports/core-courses?field=바이오&department=생명과학전공&status=pending
func (h *ExportHandler) CoreCoursesXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.CoreCoursesXLSX(
		c.Request.Context(),
		c.Query("field"),
		c.Query("department"),
		c.Query("status"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoData):
			response.NotFound(c, 16001, err.Error())
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}
	writeDownload(c, buf, filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// writeDownload 다운로드 응답 작성. 한글 파일명은 RFC 5987 방식으로 인코딩한다
func writeDownload(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(200, contentType, buf.Bytes())
}
