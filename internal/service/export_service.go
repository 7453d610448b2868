package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
)

// ── 내보내기 모듈 업무 오류 ──

var (
	ErrExportNoData       = errors.New("다운로드할 데이터가 없습니다")
	ErrExportGenerateFail = errors.New("파일 생성에 실패했습니다")
)

// utf8BOM 엑셀이 한글 CSV 를 올바르게 열도록 파일 맨 앞에 붙인다
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService 내보내기 업무 인터페이스
//
// 모든 메서드는 (buf, filename, error) 를 반환하고 Handler 가 HTTP 헤더를
// 설정한 뒤 본문으로 내려보낸다. CSV 는 UTF-8 BOM 포함, 엑셀은 excelize 사용.
type ExportService interface {
	// StudentsCSV 학생 목록 CSV. filterName 은 파일명에 들어가는 분야 라벨
	StudentsCSV(ctx context.Context, filters *repository.StudentListFilters, filterName string) (*bytes.Buffer, string, error)
	// StudentsXLSX 학생 목록 엑셀 (시트 "학생목록")
	StudentsXLSX(ctx context.Context, filters *repository.StudentListFilters) (*bytes.Buffer, string, error)
	// StudentTemplateCSV 학생 일괄 등록 양식
	StudentTemplateCSV() (*bytes.Buffer, string, error)
	// ApplicantsCSV 프로그램 신청자 명단 CSV
	ApplicantsCSV(ctx context.Context, programID string) (*bytes.Buffer, string, error)
	// ProgramsXLSX 프로그램 목록 엑셀. 신청자 수/여석/마감여부 집계 포함
	ProgramsXLSX(ctx context.Context, filters *repository.ProgramListFilters) (*bytes.Buffer, string, error)
	// CoreCoursesXLSX 학과별 이수 현황 엑셀 (데이터 시트 + 요약 시트)
	CoreCoursesXLSX(ctx context.Context, field, department, status string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService 인스턴스 생성
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// StudentsCSV 학생 목록 내보내기
// ═══════════════════════════════════════════════════════════

var studentsCSVHeader = []string{
	"학번", "이름", "학과", "분야", "이메일", "전화번호",
	"비교과", "핵심교과", "산학협력", "총점", "비고",
}

func (s *exportService) StudentsCSV(ctx context.Context, filters *repository.StudentListFilters, filterName string) (*bytes.Buffer, string, error) {
	students, err := s.repo.User.ListStudentsAll(ctx, filters)
	if err != nil {
		s.logger.Error("학생 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}

	rows := make([][]string, 0, len(students))
	for i := range students {
		st := &students[i]
		rows = append(rows, []string{
			st.StudentID,
			st.Name,
			st.Department,
			st.Field,
			st.Email,
			st.Phone,
			strconv.Itoa(st.NonCurricularScore),
			strconv.Itoa(st.CoreSubjectScore),
			strconv.Itoa(st.IndustryScore),
			strconv.Itoa(st.Total()),
			st.Memo,
		})
	}

	buf, err := writeCSV(studentsCSVHeader, rows)
	if err != nil {
		return nil, "", err
	}

	if filterName == "" {
		filterName = "전체"
	}
	filename := fmt.Sprintf("학생목록_%s_%s.csv", filterName, time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// StudentsXLSX 학생 목록 엑셀 내보내기
// ═══════════════════════════════════════════════════════════

var studentsXLSXHeader = []string{
	"학번", "이름", "학과", "분야", "이메일", "전화번호",
	"비교과 점수", "교과 점수", "산학협력 점수", "총점", "메모",
}

var studentsXLSXWidths = []float64{12, 10, 20, 10, 25, 15, 12, 12, 12, 10, 30}

func (s *exportService) StudentsXLSX(ctx context.Context, filters *repository.StudentListFilters) (*bytes.Buffer, string, error) {
	students, err := s.repo.User.ListStudentsAll(ctx, filters)
	if err != nil {
		s.logger.Error("학생 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "학생목록"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	if err := setSheetWidths(f, sheet, studentsXLSXWidths); err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(sheet, "A1", &studentsXLSXHeader); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	for i := range students {
		st := &students[i]
		cells := []interface{}{
			st.StudentID,
			st.Name,
			st.Department,
			st.Field,
			st.Email,
			st.Phone,
			st.NonCurricularScore,
			st.CoreSubjectScore,
			st.IndustryScore,
			st.Total(),
			st.Memo,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("엑셀 생성 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("학생목록_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// StudentTemplateCSV 등록 양식. 예시 행 1건 포함
func (s *exportService) StudentTemplateCSV() (*bytes.Buffer, string, error) {
	header := []string{"학번", "이름", "학과", "이메일", "전화번호", "비고"}
	example := []string{"202411001", "홍길동", "컴퓨터공학과", "hong@example.com", "010-1234-5678", ""}

	buf, err := writeCSV(header, [][]string{example})
	if err != nil {
		return nil, "", err
	}
	return buf, "학생등록양식.csv", nil
}

// ═══════════════════════════════════════════════════════════
// ApplicantsCSV 프로그램 신청자 명단 내보내기
// ═══════════════════════════════════════════════════════════

var applicantsCSVHeader = []string{
	"학번", "이름", "학과", "분야", "이메일", "전화번호", "신청일", "상태", "완료일",
}

func (s *exportService) ApplicantsCSV(ctx context.Context, programID string) (*bytes.Buffer, string, error) {
	program, err := s.repo.Program.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProgramNotFound
		}
		return nil, "", err
	}

	apps, err := s.repo.Application.ListByProgram(ctx, programID)
	if err != nil {
		s.logger.Error("신청자 명단 조회 실패", zap.Error(err))
		return nil, "", err
	}

	rows := make([][]string, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		row := make([]string, 6, len(applicantsCSVHeader))
		if app.Student != nil {
			row[0] = app.Student.StudentID
			row[1] = app.Student.Name
			row[2] = app.Student.Department
			row[3] = app.Student.Field
			row[4] = app.Student.Email
			row[5] = app.Student.Phone
		}
		row = append(row,
			app.AppliedDate.Format("2006-01-02"),
			app.StatusLabel(),
			formatDatePtr(app.CompletedDate),
		)
		rows = append(rows, row)
	}

	buf, err := writeCSV(applicantsCSVHeader, rows)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_신청자목록_%s.csv", program.Title, time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ProgramsXLSX 프로그램 목록 엑셀 내보내기
// ═══════════════════════════════════════════════════════════
//
// 신청자 수는 거부 건을 뺀 대기/승인/이수완료 합계다. 여석은 정원에서
// 신청자 수를 뺀 값, 마감여부는 신청자가 정원 이상이면 마감이다.

var programsXLSXHeader = []string{
	"프로그램명", "분류", "분야", "시작일", "종료일", "상태",
	"신청자", "정원", "여석", "마감여부", "점수", "파일첨부필수", "설명",
}

var programsXLSXWidths = []float64{30, 12, 10, 12, 12, 10, 8, 8, 8, 10, 8, 12, 50}

func (s *exportService) ProgramsXLSX(ctx context.Context, filters *repository.ProgramListFilters) (*bytes.Buffer, string, error) {
	programs, err := s.repo.Program.ListAll(ctx, filters)
	if err != nil {
		s.logger.Error("프로그램 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "프로그램목록"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	if err := setSheetWidths(f, sheet, programsXLSXWidths); err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(sheet, "A1", &programsXLSXHeader); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	for i := range programs {
		p := &programs[i]
		count, err := s.repo.Application.CountEnrolledByProgram(ctx, p.ID)
		if err != nil {
			s.logger.Error("신청자 수 집계 실패", zap.String("program_id", p.ID), zap.Error(err))
			return nil, "", err
		}
		applicants := int(count)

		closedLabel := model.ProgramStatusRecruiting
		if applicants >= p.MaxParticipants {
			closedLabel = "마감"
		}
		requiresFile := "X"
		if p.RequiresFile {
			requiresFile = "O"
		}
		cells := []interface{}{
			p.Title,
			p.Category,
			p.Field,
			formatDatePtr(p.StartDate),
			formatDatePtr(p.EndDate),
			p.Status,
			applicants,
			p.MaxParticipants,
			p.MaxParticipants - applicants,
			closedLabel,
			p.Score,
			requiresFile,
			p.Description,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("엑셀 생성 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("프로그램목록_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// CoreCoursesXLSX 학과별 이수 현황 엑셀
// ═══════════════════════════════════════════════════════════
//
// 데이터 시트 "핵심 교과목 현황": 검토 화면과 같은 행, 11개 컬럼, 고정 열 너비.
// 요약 시트 "요약": 통계 (전체/제출/대기/평균 점수/평균 이수율) 와 다운로드 정보.

var coreCoursesXLSXHeader = []string{
	"번호", "학번", "이름", "전공", "이수 과목 수", "점수",
	"증빙 파일", "제출 상태", "제출일", "승인일", "반려 사유",
}

var coreCoursesXLSXWidths = []float64{6, 12, 10, 20, 14, 8, 35, 12, 12, 12, 35}

func (s *exportService) CoreCoursesXLSX(ctx context.Context, field, department, status string) (*bytes.Buffer, string, error) {
	rows, err := buildSubmissionReviewRows(ctx, s.repo, field, department, status)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "핵심 교과목 현황"
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	if err := setSheetWidths(f, dataSheet, coreCoursesXLSXWidths); err != nil {
		return nil, "", err
	}

	// 헤더 + 데이터 행
	if err := f.SetSheetRow(dataSheet, "A1", &coreCoursesXLSXHeader); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	submittedCount, pendingCount, scoreSum, rateSum := 0, 0, 0, 0
	for i, row := range rows {
		cells := []interface{}{
			i + 1,
			row.Student.StudentID,
			row.Student.Name,
			row.Student.Department,
			0, 0, "미제출", "미제출", "-", "-", "-",
		}
		if sub := row.Submission; sub != nil {
			submittedCount++
			scoreSum += sub.TotalScore
			rateSum += sub.Percentage
			if sub.Status == model.SubmissionStatusPending {
				pendingCount++
			}

			cells[4] = sub.TotalCompletedCount
			cells[5] = sub.TotalScore
			if sub.TranscriptFileName != "" {
				cells[6] = sub.TranscriptFileName
			}
			cells[7] = sub.StatusLabel
			if sub.SubmittedAt != "" {
				cells[8] = sub.SubmittedAt[:10]
			}
			if sub.Status == model.SubmissionStatusApproved && sub.ReviewedAt != "" {
				cells[9] = sub.ReviewedAt[:10]
			}
			if sub.RejectionReason != "" {
				cells[10] = sub.RejectionReason
			}
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(dataSheet, cell, &cells); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// 요약 시트
	avgScore, avgRate := 0, 0
	if submittedCount > 0 {
		avgScore = scoreSum / submittedCount
		avgRate = rateSum / submittedCount
	}
	statusLabel := "전체"
	if status != "" && status != "all" {
		statusLabel = model.SubmissionStatusLabel(status)
	}
	summary := [][]interface{}{
		{"항목", "내용"},
		{"통계 요약", ""},
		{"전체 학생", fmt.Sprintf("%d명", len(rows))},
		{"제출 완료", fmt.Sprintf("%d명", submittedCount)},
		{"검토 대기", fmt.Sprintf("%d건", pendingCount)},
		{"평균 점수", fmt.Sprintf("%d점", avgScore)},
		{"평균 이수율", fmt.Sprintf("%d%%", avgRate)},
		{"", ""},
		{"다운로드 정보", ""},
		{"다운로드 일시", time.Now().Format("2006-01-02 15:04:05")},
		{"분야", field},
		{"전공", department},
		{"필터 상태", statusLabel},
		{"다운로드 건수", fmt.Sprintf("%d건", len(rows))},
	}

	const summarySheet = "요약"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 30); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for i := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &summary[i]); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("엑셀 생성 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("핵심교과목_%s_%s.xlsx", department, time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── 내부 헬퍼 ──

// setSheetWidths 시트의 열 너비를 왼쪽부터 순서대로 지정
func setSheetWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return ErrExportGenerateFail
		}
	}
	return nil
}

// writeCSV BOM + 헤더 + 데이터 행을 CSV 버퍼로 직렬화
func writeCSV(header []string, rows [][]string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	buf.Write(utf8BOM)

	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}
