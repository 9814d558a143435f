// Package config는 기본값, 설정 파일, 명령줄 옵션의 세 계층을 하나의 Settings로 병합하고
// 네트워크 호출 전에 그 결과를 검증합니다.
package config

import (
	"errors"
	"fmt"
)

// Settings는 한 번의 실행에 대해 확정된 설정입니다. Resolve와 Validate 이후에는 변경하지 않습니다.
type Settings struct {
	ConfigPath      string  `yaml:"config_path"`
	Username        string  `yaml:"username"`
	Password        string  `yaml:"password"`
	DID             string  `yaml:"did"`
	LockfilePath    string  `yaml:"lockfile_path"`
	InboundHandler  string  `yaml:"inbound_handler"`
	OutboundHandler string  `yaml:"outbound_handler"`
	NewOnly         bool    `yaml:"new_only"`
	PrintMode       bool    `yaml:"print_mode"`
	LatestWatermark *uint64 `yaml:"latest_watermark,omitempty"`
	DirectionFilter string  `yaml:"direction_filter,omitempty"`
	APIURL          string  `yaml:"api_url"`
}

// Watermark는 확정된 워터마크를 반환합니다. 값이 없으면 0입니다.
func (s Settings) Watermark() uint64 {
	if s.LatestWatermark == nil {
		return 0
	}
	return *s.LatestWatermark
}

// Masked는 비밀번호를 가린 복사본을 반환합니다 (출력용)
func (s Settings) Masked() Settings {
	if s.Password != "" {
		s.Password = "********"
	}
	return s
}

// Layer는 세 설정 계층 중 하나입니다. nil 필드는 해당 계층에 키가 없음을 뜻합니다.
// ConfigPath는 설정 파일 자체에서 지정할 수 없습니다.
type Layer struct {
	ConfigPath      *string `json:"-" yaml:"-"`
	Username        *string `json:"username" yaml:"username"`
	Password        *string `json:"password" yaml:"password"`
	DID             *string `json:"did" yaml:"did"`
	LockfilePath    *string `json:"lockfile_path" yaml:"lockfile_path"`
	InboundHandler  *string `json:"inbound_handler" yaml:"inbound_handler"`
	OutboundHandler *string `json:"outbound_handler" yaml:"outbound_handler"`
	NewOnly         *bool   `json:"new_only" yaml:"new_only"`
	PrintMode       *bool   `json:"print_mode" yaml:"print_mode"`
	LatestWatermark *uint64 `json:"latest_watermark" yaml:"latest_watermark"`
	DirectionFilter *string `json:"direction_filter" yaml:"direction_filter"`
	APIURL          *string `json:"api_url" yaml:"api_url"`
}

var (
	// ErrConfiguration은 잘못된 인자나 설정 값을 나타냅니다
	ErrConfiguration = errors.New("설정 오류")
	// ErrFilesystem은 잠금 파일 접근 문제를 나타냅니다
	ErrFilesystem = errors.New("파일 시스템 오류")
)

// Error는 문제가 된 필드와 값을 담은 설정/검증 오류입니다
type Error struct {
	Kind   error
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s=%q: %s", e.Kind, e.Field, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is는 errors.Is(err, ErrConfiguration) 형태의 분류를 지원합니다
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(field, value, reason string) *Error {
	return &Error{Kind: ErrConfiguration, Field: field, Value: value, Reason: reason}
}

func filesystemError(field, value, reason string, err error) *Error {
	return &Error{Kind: ErrFilesystem, Field: field, Value: value, Reason: reason, Err: err}
}
