package service

import (
	"errors"
	"strings"

	"github.com/leehwangjae/student-success-system-v2/internal/dto"
	"github.com/leehwangjae/student-success-system-v2/internal/model"
)

// ── 첨부 파일 검증 공통 오류 ──

var (
	ErrFileDataInvalid    = errors.New("파일 데이터 형식이 올바르지 않습니다")
	ErrFileTooLarge       = errors.New("파일 크기가 허용 범위를 초과했습니다")
	ErrFileTypeNotAllowed = errors.New("허용되지 않는 파일 형식입니다")
)

// 첨부로 받는 MIME 타입 화이트리스트 (이미지 + PDF)
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// dataURLMime data URL 에서 MIME 타입 추출. 형식이 아니면 빈 문자열 반환
func dataURLMime(dataURL string) string {
	if !strings.HasPrefix(dataURL, "data:") {
		return ""
	}
	rest := dataURL[len("data:"):]
	semi := strings.Index(rest, ";")
	if semi < 0 {
		return ""
	}
	return rest[:semi]
}

// validateAttachment 일반 첨부 파일 1건 검증 (크기/형식/인코딩)
func validateAttachment(f *dto.FileAttachmentPayload, maxSize int64) error {
	mime := dataURLMime(f.DataURL)
	if mime == "" {
		return ErrFileDataInvalid
	}
	if !allowedAttachmentTypes[mime] || mime != f.Type {
		return ErrFileTypeNotAllowed
	}
	if f.Size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// validateAttachments 첨부 파일 목록 검증 후 모델 타입으로 변환
func validateAttachments(files []dto.FileAttachmentPayload, maxSize int64) ([]model.FileAttachment, error) {
	result := make([]model.FileAttachment, 0, len(files))
	for i := range files {
		if err := validateAttachment(&files[i], maxSize); err != nil {
			return nil, err
		}
		result = append(result, model.FileAttachment{
			Name:    files[i].Name,
			Size:    files[i].Size,
			Type:    files[i].Type,
			DataURL: files[i].DataURL,
		})
	}
	return result, nil
}

// validateImage 인라인 이미지 data URL 검증. 크기는 base64 본문 길이로 추정
func validateImage(dataURL string, maxSize int64) error {
	mime := dataURLMime(dataURL)
	if mime == "" {
		return ErrFileDataInvalid
	}
	if !strings.HasPrefix(mime, "image/") {
		return ErrFileTypeNotAllowed
	}
	comma := strings.Index(dataURL, ",")
	if comma < 0 {
		return ErrFileDataInvalid
	}
	// base64 는 원본의 약 4/3 크기
	estimated := int64(len(dataURL)-comma-1) * 3 / 4
	if estimated > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// validateTranscript 성적표 파일 검증 (PDF/JPEG/PNG, 크기 제한)
func validateTranscript(dataURL string, size, maxSize int64) error {
	mime := dataURLMime(dataURL)
	if mime == "" {
		return ErrFileDataInvalid
	}
	if !allowedAttachmentTypes[mime] {
		return ErrFileTypeNotAllowed
	}
	if size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}
