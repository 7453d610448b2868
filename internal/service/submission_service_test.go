package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// ── 테스트 헬퍼 ──

const testTranscriptURL = "data:application/pdf;base64,JVBERi0xLjQKJeLjz9M="

func setupSubmissionService() (SubmissionService, *testMocks) {
	repo, mocks := newTestRepo()
	svc := NewSubmissionService(newTestConfig(), repo, zap.NewNop())
	return svc, mocks
}

// seedCatalog 생명공학전공 카탈로그에 n개 과목 등록 (BIO101, BIO102, ...)
func seedCatalog(t *testing.T, mocks *testMocks, n int) []model.CoreCourse {
	t.Helper()
	courses := make([]model.CoreCourse, 0, n)
	for i := 0; i < n; i++ {
		course := &model.CoreCourse{
			Field:      model.FieldBio,
			Department: "생명공학전공",
			CourseName: fmt.Sprintf("생명공학 %d", i+1),
			CourseCode: fmt.Sprintf("BIO%d", 101+i),
			CourseType: model.CourseTypeCore,
			Credits:    3,
			OrderIndex: i,
		}
		if err := mocks.courses.Create(context.Background(), course); err != nil {
			t.Fatalf("카탈로그 등록 실패: %v", err)
		}
		courses = append(courses, *course)
	}
	return courses
}

// checkedCourses 카탈로그 과목들을 모두 체크한 제출 페이로드 생성
func checkedCourses(courses []model.CoreCourse) []dto.CompletedCoursePayload {
	result := make([]dto.CompletedCoursePayload, 0, len(courses))
	for _, c := range courses {
		result = append(result, dto.CompletedCoursePayload{
			CourseID:    c.ID,
			CourseCode:  c.CourseCode,
			CourseName:  c.CourseName,
			CourseType:  c.CourseType,
			IsCompleted: true,
		})
	}
	return result
}

func submitRequest(courses []dto.CompletedCoursePayload) *dto.SubmitCoreCoursesRequest {
	return &dto.SubmitCoreCoursesRequest{
		CompletedCourses:   courses,
		TranscriptFile:     testTranscriptURL,
		TranscriptFileName: "성적표.pdf",
		TranscriptFileSize: 1024,
	}
}

// ── Submit (점수 계산) ──

// 과목당 5점, 10과목 상한 50점
func TestSubmissionService_Submit_ScoreCap(t *testing.T) {
	cases := []struct {
		checked   int
		wantScore int
	}{
		{1, 5},
		{3, 15},
		{10, 50},
		{12, 50}, // 10과목 초과분은 점수에 반영되지 않는다
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d과목", tc.checked), func(t *testing.T) {
			svc, mocks := setupSubmissionService()
			student := seedStudent(t, mocks, "202411001")
			catalog := seedCatalog(t, mocks, tc.checked)

			resp, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
			if err != nil {
				t.Fatalf("제출 실패: %v", err)
			}
			if resp.TotalScore != tc.wantScore {
				t.Errorf("기대 점수 %d, 실제: %d", tc.wantScore, resp.TotalScore)
			}
			if resp.TotalScore > model.MaxCourseScore {
				t.Errorf("점수가 상한 %d 을 초과: %d", model.MaxCourseScore, resp.TotalScore)
			}
			// 초과분도 목록에는 남는다
			if resp.TotalCompletedCount != tc.checked {
				t.Errorf("기대 과목 수 %d, 실제: %d", tc.checked, resp.TotalCompletedCount)
			}
		})
	}
}

// 12과목 체크 시 카탈로그 순서(order_index) 기준 앞 10과목만 점수에 반영된다
func TestSubmissionService_Submit_TwelveCourses(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	catalog := seedCatalog(t, mocks, 12)

	resp, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if err != nil {
		t.Fatalf("제출 실패: %v", err)
	}
	if resp.TotalScore != 50 {
		t.Errorf("기대 점수 50, 실제: %d", resp.TotalScore)
	}
	// 목록은 카탈로그 순서로 정렬되어 저장된다
	for i, c := range resp.CompletedCourses {
		if c.CourseCode != catalog[i].CourseCode {
			t.Errorf("%d번째 과목: 기대 %s, 실제: %s", i, catalog[i].CourseCode, c.CourseCode)
		}
	}
}

// 학수번호가 같은 과목은 1과목으로만 계산된다
func TestSubmissionService_Submit_DuplicateCourseCode(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	catalog := seedCatalog(t, mocks, 2)

	checked := checkedCourses(catalog)
	dup := checked[0]
	dup.CourseID = "course-dup"
	checked = append(checked, dup)

	resp, err := svc.Submit(context.Background(), student.ID, submitRequest(checked))
	if err != nil {
		t.Fatalf("제출 실패: %v", err)
	}
	if resp.TotalCompletedCount != 2 {
		t.Errorf("기대 과목 수 2, 실제: %d", resp.TotalCompletedCount)
	}
	if resp.TotalScore != 10 {
		t.Errorf("기대 점수 10, 실제: %d", resp.TotalScore)
	}
}

func TestSubmissionService_Submit_NoCourses(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	catalog := seedCatalog(t, mocks, 2)

	// 체크 해제된 과목만 보낸 경우
	unchecked := checkedCourses(catalog)
	for i := range unchecked {
		unchecked[i].IsCompleted = false
	}
	_, err := svc.Submit(context.Background(), student.ID, submitRequest(unchecked))
	if !errors.Is(err, ErrNoCoursesChecked) {
		t.Errorf("기대 ErrNoCoursesChecked, 실제: %v", err)
	}
}

func TestSubmissionService_Submit_TranscriptRequired(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	catalog := seedCatalog(t, mocks, 2)

	req := submitRequest(checkedCourses(catalog))
	req.TranscriptFile = ""
	_, err := svc.Submit(context.Background(), student.ID, req)
	if !errors.Is(err, ErrTranscriptRequired) {
		t.Errorf("기대 ErrTranscriptRequired, 실제: %v", err)
	}

	// 허용되지 않는 형식
	req = submitRequest(checkedCourses(catalog))
	req.TranscriptFile = "data:application/zip;base64,UEsDBA=="
	_, err = svc.Submit(context.Background(), student.ID, req)
	if !errors.Is(err, ErrFileTypeNotAllowed) {
		t.Errorf("기대 ErrFileTypeNotAllowed, 실제: %v", err)
	}
}

// ── 재제출 (상태 기계) ──

// pending/approved 제출은 잠기고, rejected 에서만 같은 행을 덮어쓰는 재제출이 가능하다
func TestSubmissionService_Resubmit(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	admin := seedStudent(t, mocks, "admin-1")
	catalog := seedCatalog(t, mocks, 5)

	first, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog[:3])))
	if err != nil {
		t.Fatalf("1차 제출 실패: %v", err)
	}

	// pending 상태에서는 재제출 불가
	_, err = svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if !errors.Is(err, ErrSubmissionLocked) {
		t.Errorf("pending 재제출: 기대 ErrSubmissionLocked, 실제: %v", err)
	}

	// 반려 후 재제출은 같은 행을 덮어쓰고 검토 흔적을 지운다
	if _, err := svc.Reject(context.Background(), first.ID, admin.ID, &dto.RejectSubmissionRequest{Reason: "증빙 불충분"}); err != nil {
		t.Fatalf("반려 실패: %v", err)
	}
	second, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if err != nil {
		t.Fatalf("재제출 실패: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("재제출이 새 행을 만듦: %s != %s", second.ID, first.ID)
	}
	if second.Status != model.SubmissionStatusPending {
		t.Errorf("기대 상태 pending, 실제: %s", second.Status)
	}
	if second.RejectionReason != "" {
		t.Errorf("반려 사유가 남아 있음: %s", second.RejectionReason)
	}
	if second.TotalScore != 25 {
		t.Errorf("기대 점수 25, 실제: %d", second.TotalScore)
	}

	// 승인 후에는 다시 잠긴다
	if _, err := svc.Approve(context.Background(), second.ID, admin.ID); err != nil {
		t.Fatalf("승인 실패: %v", err)
	}
	_, err = svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if !errors.Is(err, ErrSubmissionLocked) {
		t.Errorf("approved 재제출: 기대 ErrSubmissionLocked, 실제: %v", err)
	}
}

// ── Approve (점수 덮어쓰기) ──

// 제출 승인은 핵심교과 점수를 제출 점수로 덮어쓴다. 기존 적립분에 가산하지 않는다
func TestSubmissionService_Approve_OverwritesScore(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	admin := seedStudent(t, mocks, "admin-1")
	catalog := seedCatalog(t, mocks, 4)

	// 프로그램 이수로 이미 핵심교과 30점이 적립된 상태
	student.CoreSubjectScore = 30

	sub, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if err != nil {
		t.Fatalf("제출 실패: %v", err)
	}
	if _, err := svc.Approve(context.Background(), sub.ID, admin.ID); err != nil {
		t.Fatalf("승인 실패: %v", err)
	}

	if student.CoreSubjectScore != 20 {
		t.Errorf("기대 핵심교과 점수 20 (덮어쓰기), 실제: %d", student.CoreSubjectScore)
	}
}

func TestSubmissionService_Approve_PendingOnly(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	admin := seedStudent(t, mocks, "admin-1")
	catalog := seedCatalog(t, mocks, 2)

	sub, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if err != nil {
		t.Fatalf("제출 실패: %v", err)
	}
	if _, err := svc.Approve(context.Background(), sub.ID, admin.ID); err != nil {
		t.Fatalf("승인 실패: %v", err)
	}

	if _, err := svc.Approve(context.Background(), sub.ID, admin.ID); !errors.Is(err, ErrSubmissionNotPending) {
		t.Errorf("재승인: 기대 ErrSubmissionNotPending, 실제: %v", err)
	}
	if _, err := svc.Reject(context.Background(), sub.ID, admin.ID, &dto.RejectSubmissionRequest{Reason: "사유"}); !errors.Is(err, ErrSubmissionNotPending) {
		t.Errorf("승인 후 반려: 기대 ErrSubmissionNotPending, 실제: %v", err)
	}
}

func TestSubmissionService_Reject_ReasonRequired(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")
	admin := seedStudent(t, mocks, "admin-1")
	catalog := seedCatalog(t, mocks, 2)

	sub, err := svc.Submit(context.Background(), student.ID, submitRequest(checkedCourses(catalog)))
	if err != nil {
		t.Fatalf("제출 실패: %v", err)
	}

	if _, err := svc.Reject(context.Background(), sub.ID, admin.ID, &dto.RejectSubmissionRequest{Reason: "   "}); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("기대 ErrReasonRequired, 실제: %v", err)
	}

	rejected, err := svc.Reject(context.Background(), sub.ID, admin.ID, &dto.RejectSubmissionRequest{Reason: "증빙 불충분"})
	if err != nil {
		t.Fatalf("반려 실패: %v", err)
	}
	if rejected.RejectionReason != "증빙 불충분" {
		t.Errorf("반려 사유 저장 실패: %s", rejected.RejectionReason)
	}
	// 반려는 점수를 변경하지 않는다
	if student.CoreSubjectScore != 0 {
		t.Errorf("반려가 점수를 변경함: %d", student.CoreSubjectScore)
	}
}

// ── GetMine / ListReview ──

func TestSubmissionService_GetMine_NoSubmission(t *testing.T) {
	svc, mocks := setupSubmissionService()
	student := seedStudent(t, mocks, "202411001")

	resp, err := svc.GetMine(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("조회 실패: %v", err)
	}
	if resp != nil {
		t.Errorf("제출 이력이 없는데 응답이 반환됨: %+v", resp)
	}
}

// 미제출 학생도 행으로 포함되고 상태 필터가 적용된다
func TestSubmissionService_ListReview(t *testing.T) {
	svc, mocks := setupSubmissionService()
	submitted := seedStudent(t, mocks, "202411001")
	seedStudent(t, mocks, "202411002") // 미제출
	catalog := seedCatalog(t, mocks, 3)

	if _, err := svc.Submit(context.Background(), submitted.ID, submitRequest(checkedCourses(catalog))); err != nil {
		t.Fatalf("제출 실패: %v", err)
	}

	rows, err := svc.ListReview(context.Background(), model.FieldBio, "", "")
	if err != nil {
		t.Fatalf("검토 목록 조회 실패: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("기대 2행 (미제출 포함), 실제: %d행", len(rows))
	}

	pending, err := svc.ListReview(context.Background(), model.FieldBio, "", model.SubmissionStatusPending)
	if err != nil {
		t.Fatalf("검토 목록 조회 실패: %v", err)
	}
	if len(pending) != 1 || pending[0].Student.StudentID != "202411001" {
		t.Errorf("pending 필터 실패: %+v", pending)
	}

	none, err := svc.ListReview(context.Background(), model.FieldBio, "", "none")
	if err != nil {
		t.Fatalf("검토 목록 조회 실패: %v", err)
	}
	if len(none) != 1 || none[0].Student.StudentID != "202411002" {
		t.Errorf("미제출 필터 실패: %+v", none)
	}
	if none[0].Submission != nil {
		t.Error("미제출 행에 제출 정보가 채워짐")
	}
}
