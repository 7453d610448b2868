package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// ── 테스트 헬퍼 ──

func setupCoreCourseService() (CoreCourseService, *testMocks) {
	repo, mocks := newTestRepo()
	svc := NewCoreCourseService(repo, zap.NewNop())
	return svc, mocks
}

func saveCoreCourseRequest(code string, orderIndex int) *dto.SaveCoreCourseRequest {
	return &dto.SaveCoreCourseRequest{
		Field:      model.FieldBio,
		Department: "생명공학전공",
		CourseName: "생화학",
		CourseCode: code,
		CourseType: model.CourseTypeCore,
		Credits:    3,
		OrderIndex: orderIndex,
	}
}

// ── Create (학수번호 중복) ──

func TestCoreCourseService_Create_DuplicateCode(t *testing.T) {
	svc, _ := setupCoreCourseService()

	if _, err := svc.Create(context.Background(), saveCoreCourseRequest("BIO101", 0)); err != nil {
		t.Fatalf("교과목 등록 실패: %v", err)
	}

	// 같은 분야+학과 내 학수번호 중복 금지
	_, err := svc.Create(context.Background(), saveCoreCourseRequest("BIO101", 1))
	if !errors.Is(err, ErrCourseCodeTaken) {
		t.Errorf("기대 ErrCourseCodeTaken, 실제: %v", err)
	}

	// 다른 학과에서는 같은 학수번호 사용 가능
	other := saveCoreCourseRequest("BIO101", 0)
	other.Department = "생명과학전공"
	if _, err := svc.Create(context.Background(), other); err != nil {
		t.Errorf("타 학과 동일 학수번호 등록 실패: %v", err)
	}
}

// ── Update ──

func TestCoreCourseService_Update(t *testing.T) {
	svc, _ := setupCoreCourseService()

	created, err := svc.Create(context.Background(), saveCoreCourseRequest("BIO101", 0))
	if err != nil {
		t.Fatalf("교과목 등록 실패: %v", err)
	}
	if _, err := svc.Create(context.Background(), saveCoreCourseRequest("BIO102", 1)); err != nil {
		t.Fatalf("교과목 등록 실패: %v", err)
	}

	// 학수번호를 유지한 수정은 자기 자신과의 충돌로 보지 않는다
	req := saveCoreCourseRequest("BIO101", 0)
	req.CourseName = "고급 생화학"
	updated, err := svc.Update(context.Background(), created.ID, req)
	if err != nil {
		t.Fatalf("교과목 수정 실패: %v", err)
	}
	if updated.CourseName != "고급 생화학" {
		t.Errorf("수정 결과 불일치: %s", updated.CourseName)
	}

	// 다른 과목의 학수번호로는 변경 불가
	_, err = svc.Update(context.Background(), created.ID, saveCoreCourseRequest("BIO102", 0))
	if !errors.Is(err, ErrCourseCodeTaken) {
		t.Errorf("기대 ErrCourseCodeTaken, 실제: %v", err)
	}
}

func TestCoreCourseService_Update_NotFound(t *testing.T) {
	svc, _ := setupCoreCourseService()

	_, err := svc.Update(context.Background(), "nonexistent", saveCoreCourseRequest("BIO101", 0))
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("기대 ErrCourseNotFound, 실제: %v", err)
	}
}

// ── List (정렬) ──

func TestCoreCourseService_List_Order(t *testing.T) {
	svc, _ := setupCoreCourseService()

	// order_index 우선, 동률이면 과목명 순
	b := saveCoreCourseRequest("BIO102", 1)
	b.CourseName = "분자생물학"
	if _, err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("교과목 등록 실패: %v", err)
	}
	a := saveCoreCourseRequest("BIO101", 0)
	if _, err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("교과목 등록 실패: %v", err)
	}

	courses, err := svc.List(context.Background(), &dto.CoreCourseListRequest{
		Field:      model.FieldBio,
		Department: "생명공학전공",
	})
	if err != nil {
		t.Fatalf("교과목 목록 조회 실패: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("기대 2건, 실제: %d건", len(courses))
	}
	if courses[0].CourseCode != "BIO101" || courses[1].CourseCode != "BIO102" {
		t.Errorf("정렬 불일치: %s, %s", courses[0].CourseCode, courses[1].CourseCode)
	}
}

// ── Delete ──

func TestCoreCourseService_Delete(t *testing.T) {
	svc, mocks := setupCoreCourseService()

	created, err := svc.Create(context.Background(), saveCoreCourseRequest("BIO101", 0))
	if err != nil {
		t.Fatalf("교과목 등록 실패: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("교과목 삭제 실패: %v", err)
	}
	if len(mocks.courses.courses) != 0 {
		t.Error("교과목 행이 삭제되지 않음")
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("기대 ErrCourseNotFound, 실제: %v", err)
	}
}
