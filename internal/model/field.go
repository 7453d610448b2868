package model

// 분야 (트랙). 프로그램/공지/교과목/학생 대상 지정에 사용
const (
	FieldCommon    = "공통"
	FieldBio       = "바이오"
	FieldSemicon   = "반도체"
	FieldLogistics = "물류"
	FieldEtc       = "기타"
)

// FieldDepartments 핵심 교과목 카탈로그가 관리되는 분야별 학과 목록
var FieldDepartments = map[string][]string{
	FieldBio: {
		"생명과학전공",
		"분자의생명전공",
		"생명공학전공",
		"나노바이오공학전공",
	},
	FieldSemicon: {
		"전자공학전공",
		"반도체융합전공",
	},
	FieldLogistics: {
		"동북아국제통상전공",
		"스마트물류공학전공",
		"물류학 연계전공",
	},
}

// DepartmentField 학과명 → 소속 분야 판정
// 매핑에 없는 학과는 기타로 귀속된다.
func DepartmentField(department string) string {
	switch department {
	case "생명과학전공", "분자의생명전공", "생명공학전공", "나노바이오공학전공":
		return FieldBio
	case "전자공학부", "전자공학전공", "반도체융합전공":
		return FieldSemicon
	case "동북아국제통상물류학부", "동북아국제통상전공", "스마트물류공학전공", "물류학 연계전공", "글로벌무역물류학과":
		return FieldLogistics
	default:
		return FieldEtc
	}
}
