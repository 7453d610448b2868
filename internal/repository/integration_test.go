//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=ssi password=ssi_password dbname=ssi_test sslmode=disable TimeZone=Asia/Seoul"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "테스트 DB 연결 실패: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Program{},
		&model.ProgramApplication{},
		&model.Notice{},
		&model.CoreCourse{},
		&model.CoreCoursesSubmission{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 실패: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData 기본 테스트 데이터 생성과 정리 함수 반환
func setupTestData(t *testing.T) (student *model.User, program *model.Program, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	student = &model.User{
		Username:     fmt.Sprintf("stud%d", suffix),
		PasswordHash: "$2a$10$placeholder",
		Name:         "테스트 학생",
		StudentID:    fmt.Sprintf("%d", suffix),
		Department:   "생명공학전공",
		Field:        model.FieldBio,
		AccountType:  model.RoleStudent,
		Status:       model.UserStatusApproved,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("학생 생성 실패: %v", err)
	}

	program = &model.Program{
		Title:    fmt.Sprintf("테스트 프로그램-%d", suffix),
		Category: model.CategoryNonCurricular,
		Field:    model.FieldBio,
		Status:   model.ProgramStatusRecruiting,
		Score:    10,
	}
	if err := testDB.WithContext(ctx).Create(program).Error; err != nil {
		t.Fatalf("프로그램 생성 실패: %v", err)
	}

	cleanup = func() {
		testDB.Where("program_id = ?", program.ID).Delete(&model.ProgramApplication{})
		testDB.Where("student_id = ?", student.ID).Delete(&model.CoreCoursesSubmission{})
		testDB.Delete(program)
		testDB.Delete(student)
	}
	return student, program, cleanup
}

// ═══════════════════════════════════════════════════════════
// UserRepository
// ═══════════════════════════════════════════════════════════

func TestUserRepo_ListStudents_FieldFilter(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewUserRepo(testDB)
	ctx := context.Background()

	students, total, err := repo.ListStudents(ctx, &repository.StudentListFilters{Field: model.FieldBio}, 0, 100)
	if err != nil {
		t.Fatalf("학생 목록 조회 실패: %v", err)
	}
	if total == 0 {
		t.Fatal("바이오 분야 학생이 조회되지 않음")
	}
	found := false
	for _, u := range students {
		if u.ID == student.ID {
			found = true
		}
		if u.Field != model.FieldBio {
			t.Errorf("분야 필터 누수: %s", u.Field)
		}
	}
	if !found {
		t.Error("생성한 학생이 목록에 없음")
	}
}

func TestUserRepo_ListStudents_KeywordFilter(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewUserRepo(testDB)
	ctx := context.Background()

	students, _, err := repo.ListStudents(ctx, &repository.StudentListFilters{Keyword: student.StudentID}, 0, 10)
	if err != nil {
		t.Fatalf("학생 목록 조회 실패: %v", err)
	}
	if len(students) != 1 || students[0].ID != student.ID {
		t.Errorf("학번 검색 실패: %+v", students)
	}
}

// ═══════════════════════════════════════════════════════════
// ApplicationRepository
// ═══════════════════════════════════════════════════════════

func TestApplicationRepo_ActiveQueries(t *testing.T) {
	student, program, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewApplicationRepo(testDB)
	ctx := context.Background()

	app := &model.ProgramApplication{
		ProgramID:   program.ID,
		StudentID:   student.ID,
		Status:      model.ApplicationStatusPending,
		AppliedDate: time.Now(),
	}
	if err := repo.Create(ctx, app); err != nil {
		t.Fatalf("신청 생성 실패: %v", err)
	}

	// 활성 신청 조회와 수는 대기/승인 상태만 본다
	if _, err := repo.GetActiveByProgramAndStudent(ctx, program.ID, student.ID); err != nil {
		t.Errorf("활성 신청 조회 실패: %v", err)
	}
	count, err := repo.CountActiveByProgram(ctx, program.ID)
	if err != nil {
		t.Fatalf("활성 신청 수 조회 실패: %v", err)
	}
	if count != 1 {
		t.Errorf("기대 활성 1건, 실제: %d건", count)
	}

	app.Status = model.ApplicationStatusRejected
	if err := repo.Update(ctx, app); err != nil {
		t.Fatalf("신청 갱신 실패: %v", err)
	}
	if _, err := repo.GetActiveByProgramAndStudent(ctx, program.ID, student.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("거부 건이 활성으로 조회됨: %v", err)
	}
	count, _ = repo.CountActiveByProgram(ctx, program.ID)
	if count != 0 {
		t.Errorf("기대 활성 0건, 실제: %d건", count)
	}
}

func TestApplicationRepo_ListByStudent_PreloadsProgram(t *testing.T) {
	student, program, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewApplicationRepo(testDB)
	ctx := context.Background()

	if err := repo.Create(ctx, &model.ProgramApplication{
		ProgramID:   program.ID,
		StudentID:   student.ID,
		Status:      model.ApplicationStatusPending,
		AppliedDate: time.Now(),
	}); err != nil {
		t.Fatalf("신청 생성 실패: %v", err)
	}

	apps, err := repo.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("신청 목록 조회 실패: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("기대 1건, 실제: %d건", len(apps))
	}
	if apps[0].Program == nil || apps[0].Program.Title != program.Title {
		t.Error("프로그램 연관이 로드되지 않음")
	}
}

// ═══════════════════════════════════════════════════════════
// SubmissionRepository
// ═══════════════════════════════════════════════════════════

func TestSubmissionRepo_JSONBRoundTrip(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewSubmissionRepo(testDB)
	ctx := context.Background()

	now := time.Now()
	sub := &model.CoreCoursesSubmission{
		StudentID: student.ID,
		CompletedCourses: model.CompletedCourseList{
			{CourseID: "c1", CourseCode: "BIO101", CourseName: "생화학", CourseType: model.CourseTypeCore, IsCompleted: true},
			{CourseID: "c2", CourseCode: "BIO102", CourseName: "분자생물학", CourseType: model.CourseTypeCore, IsCompleted: true},
		},
		TotalCompletedCount: 2,
		TotalScore:          10,
		TranscriptFileName:  "성적표.pdf",
		Status:              model.SubmissionStatusPending,
		SubmittedAt:         &now,
	}
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("제출 생성 실패: %v", err)
	}

	loaded, err := repo.GetByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("제출 조회 실패: %v", err)
	}
	if len(loaded.CompletedCourses) != 2 {
		t.Fatalf("JSONB 과목 목록 왕복 실패: %d건", len(loaded.CompletedCourses))
	}
	if loaded.CompletedCourses[0].CourseCode != "BIO101" {
		t.Errorf("과목 순서/내용 불일치: %+v", loaded.CompletedCourses[0])
	}
}

func TestSubmissionRepo_List_FieldJoin(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewSubmissionRepo(testDB)
	ctx := context.Background()

	now := time.Now()
	if err := repo.Create(ctx, &model.CoreCoursesSubmission{
		StudentID:   student.ID,
		TotalScore:  10,
		Status:      model.SubmissionStatusPending,
		SubmittedAt: &now,
	}); err != nil {
		t.Fatalf("제출 생성 실패: %v", err)
	}

	subs, err := repo.List(ctx, model.FieldBio, model.SubmissionStatusPending)
	if err != nil {
		t.Fatalf("제출 목록 조회 실패: %v", err)
	}
	found := false
	for _, s := range subs {
		if s.StudentID == student.ID {
			found = true
		}
	}
	if !found {
		t.Error("분야 조인 목록에 생성한 제출이 없음")
	}

	subs, err = repo.List(ctx, model.FieldLogistics, "")
	if err != nil {
		t.Fatalf("제출 목록 조회 실패: %v", err)
	}
	for _, s := range subs {
		if s.StudentID == student.ID {
			t.Error("다른 분야 목록에 제출이 포함됨")
		}
	}
}
