// Package watermark는 마지막으로 처리한 메시지 ID를 잠금 파일 하나에 보관합니다.
//
// 같은 잠금 파일을 쓰는 여러 프로세스 사이의 상호 배제는 제공하지 않습니다.
package watermark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotWritable은 잠금 파일의 디렉토리에 쓸 수 없을 때 반환됩니다
	ErrNotWritable = errors.New("잠금 파일 디렉토리에 쓸 수 없습니다")
	// ErrNotReadable은 존재하는 잠금 파일을 읽을 수 없을 때 반환됩니다
	ErrNotReadable = errors.New("잠금 파일을 읽을 수 없습니다")
	// ErrMalformed는 잠금 파일 내용이 부호 없는 정수가 아닐 때 반환됩니다
	ErrMalformed = errors.New("잠금 파일 내용이 부호 없는 정수가 아닙니다")
)

// Store는 잠금 파일 기반 워터마크 저장소입니다
type Store struct {
	path string
}

// New는 주어진 잠금 파일 경로에 대한 저장소를 생성합니다
func New(path string) *Store {
	return &Store{path: path}
}

// Path는 잠금 파일 경로를 반환합니다
func (s *Store) Path() string {
	return s.path
}

// Read는 저장된 워터마크를 읽습니다.
// 잠금 파일이 없고 디렉토리에 쓸 수 있으면 0을 반환합니다.
func (s *Store) Read() (uint64, error) {
	dir := filepath.Dir(s.path)
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %s: %v", ErrNotReadable, s.path, err)
	}

	raw := strings.TrimSpace(string(data))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrMalformed, s.path, raw)
	}
	return value, nil
}

// Write는 잠금 파일 전체를 새 워터마크의 10진수 표현으로 덮어씁니다
func (s *Store) Write(value uint64) error {
	if err := os.WriteFile(s.path, []byte(strconv.FormatUint(value, 10)), 0644); err != nil {
		return fmt.Errorf("워터마크 쓰기 실패 (%s): %w", s.path, err)
	}
	return nil
}
