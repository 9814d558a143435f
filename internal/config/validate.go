package config

import (
	"errors"
	"net/mail"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"

	"golang.org/x/sys/unix"

	"voipms-sms-sync/internal/watermark"
)

var didPattern = regexp.MustCompile(`^[0-9]{10}$`)

// Validate는 확정된 설정을 검증합니다. 첫 번째 위반에서 멈춥니다.
// latest_watermark가 없으면 잠금 파일에서 읽어 채운 복사본을 반환합니다.
// 어떤 검사도 파일을 만들거나 수정하지 않습니다.
func Validate(s Settings) (Settings, error) {
	if err := s.validateRequired(); err != nil {
		return Settings{}, err
	}

	if !isEmailAddress(s.Username) {
		return Settings{}, configError("username", s.Username, "올바른 이메일 주소가 아닙니다")
	}

	if !didPattern.MatchString(s.DID) {
		return Settings{}, configError("did", s.DID, "DID는 정확히 10자리 숫자여야 합니다")
	}

	if !s.PrintMode {
		if err := validateHandler("inbound_handler", s.InboundHandler); err != nil {
			return Settings{}, err
		}
		if err := validateHandler("outbound_handler", s.OutboundHandler); err != nil {
			return Settings{}, err
		}
	}

	if err := validateLockfile(s.LockfilePath); err != nil {
		return Settings{}, err
	}

	if s.LatestWatermark == nil {
		value, err := watermark.New(s.LockfilePath).Read()
		if err != nil {
			if errors.Is(err, watermark.ErrMalformed) {
				return Settings{}, &Error{Kind: ErrConfiguration, Field: "latest_watermark", Value: s.LockfilePath, Reason: "잠금 파일 값이 부호 없는 정수가 아닙니다", Err: err}
			}
			return Settings{}, filesystemError("lockfile_path", s.LockfilePath, "워터마크를 읽을 수 없습니다", err)
		}
		s.LatestWatermark = &value
	}

	switch s.DirectionFilter {
	case "", "in", "out":
	default:
		return Settings{}, configError("direction_filter", s.DirectionFilter, `방향은 "in" 또는 "out"이어야 합니다`)
	}

	return s, nil
}

func (s Settings) validateRequired() error {
	if s.Username == "" {
		return configError("username", s.Username, "필수 항목입니다")
	}
	if s.Password == "" {
		return configError("password", "", "필수 항목입니다")
	}
	if s.DID == "" {
		return configError("did", s.DID, "필수 항목입니다")
	}
	return nil
}

// isEmailAddress는 표시 이름 없이 주소만 있는 경우에만 참입니다
func isEmailAddress(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Name == "" && addr.Address == value
}

func validateHandler(field, command string) error {
	if command == "" {
		return configError(field, command, "핸들러가 지정되지 않았습니다")
	}
	if _, err := exec.LookPath(command); err != nil {
		return &Error{Kind: ErrConfiguration, Field: field, Value: command, Reason: "실행 가능한 핸들러가 아닙니다", Err: err}
	}
	return nil
}

func validateLockfile(path string) error {
	if path == "" {
		return configError("lockfile_path", path, "잠금 파일 경로가 비어 있습니다")
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return filesystemError("lockfile_path", path, "잠금 파일 디렉토리가 없습니다", err)
	}
	if !info.IsDir() {
		return filesystemError("lockfile_path", path, "잠금 파일 디렉토리가 디렉토리가 아닙니다", nil)
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return filesystemError("lockfile_path", path, "잠금 파일 디렉토리에 쓸 수 없습니다", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := unix.Access(path, unix.R_OK); err != nil {
			return filesystemError("lockfile_path", path, "잠금 파일을 읽을 수 없습니다", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return filesystemError("lockfile_path", path, "잠금 파일 상태를 확인할 수 없습니다", err)
	}
	return nil
}

// ParseWatermark는 --latest 값처럼 문자열로 받은 워터마크를 해석합니다
func ParseWatermark(raw string) (uint64, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, configError("latest_watermark", raw, "부호 없는 정수가 아닙니다")
	}
	return value, nil
}
