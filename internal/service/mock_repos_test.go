package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
)

// ── 목 Repository ──
//
// DB 없이 서비스 계층을 검증하기 위한 맵 기반 구현.
// 없는 행은 GORM 구현과 동일하게 gorm.ErrRecordNotFound 를 반환한다.

// mockUserRepo UserRepository 목
type mockUserRepo struct {
	seq   int
	users map[string]*model.User // key: user ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// matchStudent GORM 구현의 studentsQuery 와 같은 필터 규칙
func (m *mockUserRepo) matchStudent(f *repository.StudentListFilters, u *model.User) bool {
	if u.AccountType != model.RoleStudent || u.Status != model.UserStatusApproved {
		return false
	}
	if f == nil {
		return true
	}
	switch f.Field {
	case "", "전체":
	case model.FieldEtc:
		if u.Field == model.FieldBio || u.Field == model.FieldSemicon || u.Field == model.FieldLogistics {
			return false
		}
	default:
		if u.Field != f.Field {
			return false
		}
	}
	if f.Keyword != "" &&
		!strings.Contains(u.StudentID, f.Keyword) && !strings.Contains(u.Name, f.Keyword) {
		return false
	}
	return true
}

func (m *mockUserRepo) listStudents(f *repository.StudentListFilters) []model.User {
	var result []model.User
	for _, u := range m.users {
		if m.matchStudent(f, u) {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result
}

func (m *mockUserRepo) ListStudents(_ context.Context, f *repository.StudentListFilters, offset, limit int) ([]model.User, int64, error) {
	all := m.listStudents(f)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListStudentsAll(_ context.Context, f *repository.StudentListFilters) ([]model.User, error) {
	return m.listStudents(f), nil
}

func (m *mockUserRepo) ListPending(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Status == model.UserStatusPending {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// mockProgramRepo ProgramRepository 목
type mockProgramRepo struct {
	seq      int
	programs map[string]*model.Program
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{programs: make(map[string]*model.Program)}
}

func (m *mockProgramRepo) Create(_ context.Context, program *model.Program) error {
	if program.ID == "" {
		m.seq++
		program.ID = fmt.Sprintf("program-%d", m.seq)
	}
	m.programs[program.ID] = program
	return nil
}

func (m *mockProgramRepo) GetByID(_ context.Context, id string) (*model.Program, error) {
	if p, ok := m.programs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) Update(_ context.Context, program *model.Program) error {
	if _, ok := m.programs[program.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.programs[program.ID] = program
	return nil
}

func (m *mockProgramRepo) Delete(_ context.Context, id string) error {
	delete(m.programs, id)
	return nil
}

func (m *mockProgramRepo) listAll(f *repository.ProgramListFilters) []model.Program {
	var result []model.Program
	for _, p := range m.programs {
		if f != nil {
			if f.Field != "" && f.Field != "전체" && p.Field != f.Field {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockProgramRepo) List(_ context.Context, f *repository.ProgramListFilters, offset, limit int) ([]model.Program, int64, error) {
	all := m.listAll(f)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockProgramRepo) ListAll(_ context.Context, f *repository.ProgramListFilters) ([]model.Program, error) {
	return m.listAll(f), nil
}

// mockNoticeRepo NoticeRepository 목
type mockNoticeRepo struct {
	seq     int
	notices map[string]*model.Notice
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{notices: make(map[string]*model.Notice)}
}

func (m *mockNoticeRepo) Create(_ context.Context, notice *model.Notice) error {
	if notice.ID == "" {
		m.seq++
		notice.ID = fmt.Sprintf("notice-%d", m.seq)
	}
	m.notices[notice.ID] = notice
	return nil
}

func (m *mockNoticeRepo) GetByID(_ context.Context, id string) (*model.Notice, error) {
	if n, ok := m.notices[id]; ok {
		// GORM 처럼 새 구조체에 로드한 사본을 반환한다
		copied := *n
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoticeRepo) Update(_ context.Context, notice *model.Notice) error {
	if _, ok := m.notices[notice.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.notices[notice.ID] = notice
	return nil
}

func (m *mockNoticeRepo) Delete(_ context.Context, id string) error {
	delete(m.notices, id)
	return nil
}

func (m *mockNoticeRepo) List(_ context.Context, field string, offset, limit int) ([]model.Notice, int64, error) {
	var all []model.Notice
	for _, n := range m.notices {
		if field != "" && field != "전체" && n.Field != field && n.Field != model.FieldCommon {
			continue
		}
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNoticeRepo) IncrementViews(_ context.Context, id string) error {
	if n, ok := m.notices[id]; ok {
		n.Views++
		return nil
	}
	return gorm.ErrRecordNotFound
}

// mockApplicationRepo ApplicationRepository 목
// Preload 를 흉내내기 위해 프로그램/사용자 목을 참조해 연관을 채운다.
type mockApplicationRepo struct {
	seq      int
	apps     map[string]*model.ProgramApplication
	programs *mockProgramRepo
	users    *mockUserRepo
}

func newMockApplicationRepo(programs *mockProgramRepo, users *mockUserRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:     make(map[string]*model.ProgramApplication),
		programs: programs,
		users:    users,
	}
}

func (m *mockApplicationRepo) attach(app *model.ProgramApplication) {
	if p, ok := m.programs.programs[app.ProgramID]; ok {
		app.Program = p
	}
	if u, ok := m.users.users[app.StudentID]; ok {
		app.Student = u
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.ProgramApplication) error {
	if app.ID == "" {
		m.seq++
		app.ID = fmt.Sprintf("app-%d", m.seq)
	}
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.ProgramApplication, error) {
	if a, ok := m.apps[id]; ok {
		m.attach(a)
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) GetActiveByProgramAndStudent(_ context.Context, programID, studentID string) (*model.ProgramApplication, error) {
	for _, a := range m.apps {
		if a.ProgramID == programID && a.StudentID == studentID && a.IsActive() {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.ProgramApplication) error {
	if _, ok := m.apps[app.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string) error {
	delete(m.apps, id)
	return nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]model.ProgramApplication, error) {
	var result []model.ProgramApplication
	for _, a := range m.apps {
		if a.StudentID == studentID {
			m.attach(a)
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AppliedDate.After(result[j].AppliedDate) })
	return result, nil
}

func (m *mockApplicationRepo) ListByProgram(_ context.Context, programID string) ([]model.ProgramApplication, error) {
	var result []model.ProgramApplication
	for _, a := range m.apps {
		if a.ProgramID == programID {
			m.attach(a)
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AppliedDate.Before(result[j].AppliedDate) })
	return result, nil
}

func (m *mockApplicationRepo) CountActiveByProgram(_ context.Context, programID string) (int64, error) {
	var count int64
	for _, a := range m.apps {
		if a.ProgramID == programID && a.IsActive() {
			count++
		}
	}
	return count, nil
}

func (m *mockApplicationRepo) CountEnrolledByProgram(_ context.Context, programID string) (int64, error) {
	var count int64
	for _, a := range m.apps {
		if a.ProgramID == programID && a.Status != model.ApplicationStatusRejected {
			count++
		}
	}
	return count, nil
}

// mockCoreCourseRepo CoreCourseRepository 목
type mockCoreCourseRepo struct {
	seq     int
	courses map[string]*model.CoreCourse
}

func newMockCoreCourseRepo() *mockCoreCourseRepo {
	return &mockCoreCourseRepo{courses: make(map[string]*model.CoreCourse)}
}

func (m *mockCoreCourseRepo) Create(_ context.Context, course *model.CoreCourse) error {
	if course.ID == "" {
		m.seq++
		course.ID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCoreCourseRepo) GetByID(_ context.Context, id string) (*model.CoreCourse, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoreCourseRepo) GetByCode(_ context.Context, field, department, courseCode string) (*model.CoreCourse, error) {
	for _, c := range m.courses {
		if c.Field == field && c.Department == department && c.CourseCode == courseCode {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoreCourseRepo) Update(_ context.Context, course *model.CoreCourse) error {
	if _, ok := m.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCoreCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCoreCourseRepo) ListByDepartment(_ context.Context, field, department string) ([]model.CoreCourse, error) {
	var result []model.CoreCourse
	for _, c := range m.courses {
		if c.Field == field && c.Department == department {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OrderIndex != result[j].OrderIndex {
			return result[i].OrderIndex < result[j].OrderIndex
		}
		return result[i].CourseName < result[j].CourseName
	})
	return result, nil
}

// mockSubmissionRepo SubmissionRepository 목
type mockSubmissionRepo struct {
	seq   int
	subs  map[string]*model.CoreCoursesSubmission
	users *mockUserRepo
}

func newMockSubmissionRepo(users *mockUserRepo) *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[string]*model.CoreCoursesSubmission), users: users}
}

func (m *mockSubmissionRepo) attach(sub *model.CoreCoursesSubmission) {
	if u, ok := m.users.users[sub.StudentID]; ok {
		sub.Student = u
	}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.CoreCoursesSubmission) error {
	if sub.ID == "" {
		m.seq++
		sub.ID = fmt.Sprintf("sub-%d", m.seq)
	}
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.CoreCoursesSubmission, error) {
	if s, ok := m.subs[id]; ok {
		m.attach(s)
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByStudent(_ context.Context, studentID string) (*model.CoreCoursesSubmission, error) {
	for _, s := range m.subs {
		if s.StudentID == studentID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) Update(_ context.Context, sub *model.CoreCoursesSubmission) error {
	if _, ok := m.subs[sub.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubmissionRepo) List(_ context.Context, field, status string) ([]model.CoreCoursesSubmission, error) {
	var result []model.CoreCoursesSubmission
	for _, s := range m.subs {
		if field != "" {
			u, ok := m.users.users[s.StudentID]
			if !ok || u.Field != field {
				continue
			}
		}
		if status != "" && s.Status != status {
			continue
		}
		m.attach(s)
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		ti, tj := result[i].SubmittedAt, result[j].SubmittedAt
		if ti == nil || tj == nil {
			return tj == nil
		}
		return ti.After(*tj)
	})
	return result, nil
}

// ── 테스트 공통 구성 ──

// testMocks 한 테스트 케이스가 공유하는 목 저장소 묶음
type testMocks struct {
	users    *mockUserRepo
	programs *mockProgramRepo
	notices  *mockNoticeRepo
	apps     *mockApplicationRepo
	courses  *mockCoreCourseRepo
	subs     *mockSubmissionRepo
}

// newTestRepo 목 저장소로 구성된 Repository 집합 생성
// db 가 없으므로 Atomic 은 트랜잭션 없이 fn 을 그대로 실행한다.
func newTestRepo() (*repository.Repository, *testMocks) {
	users := newMockUserRepo()
	programs := newMockProgramRepo()
	mocks := &testMocks{
		users:    users,
		programs: programs,
		notices:  newMockNoticeRepo(),
		apps:     newMockApplicationRepo(programs, users),
		courses:  newMockCoreCourseRepo(),
		subs:     newMockSubmissionRepo(users),
	}
	repo := &repository.Repository{
		User:        mocks.users,
		Program:     mocks.programs,
		Notice:      mocks.notices,
		Application: mocks.apps,
		CoreCourse:  mocks.courses,
		Submission:  mocks.subs,
	}
	return repo, mocks
}

// newTestConfig 테스트용 설정
func newTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-tests",
			AccessTokenTTL:          30 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
		Upload: config.UploadConfig{
			MaxImageSize:      5 * 1024 * 1024,
			MaxTranscriptSize: 10 * 1024 * 1024,
		},
	}
}

// newTestJWTManager 테스트용 토큰 관리자
func newTestJWTManager() *jwt.Manager {
	cfg := newTestConfig()
	return jwt.NewManager(&cfg.Auth)
}
