package config

import (
	"errors"

	"github.com/rs/zerolog"
)

// Merge는 계층을 순서대로 덮어써서 Settings를 만듭니다. 뒤의 계층이 우선합니다.
// 각 키는 값 전체가 교체됩니다.
func Merge(layers ...Layer) Settings {
	var s Settings
	for _, l := range layers {
		l.applyTo(&s)
	}
	return s
}

func (l Layer) applyTo(s *Settings) {
	setString(&s.ConfigPath, l.ConfigPath)
	setString(&s.Username, l.Username)
	setString(&s.Password, l.Password)
	setString(&s.DID, l.DID)
	setString(&s.LockfilePath, l.LockfilePath)
	setString(&s.InboundHandler, l.InboundHandler)
	setString(&s.OutboundHandler, l.OutboundHandler)
	setString(&s.DirectionFilter, l.DirectionFilter)
	setString(&s.APIURL, l.APIURL)
	if l.NewOnly != nil {
		s.NewOnly = *l.NewOnly
	}
	if l.PrintMode != nil {
		s.PrintMode = *l.PrintMode
	}
	if l.LatestWatermark != nil {
		v := *l.LatestWatermark
		s.LatestWatermark = &v
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// CheckOverrides는 명령줄 계층 자체의 제약을 확인합니다.
// 출력 모드와 핸들러 지정은 함께 쓸 수 없습니다. 기본값과 설정 파일의 핸들러는 예외입니다.
func CheckOverrides(overrides Layer) error {
	if overrides.PrintMode == nil || !*overrides.PrintMode {
		return nil
	}
	if overrides.InboundHandler != nil {
		return configError("inbound_handler", *overrides.InboundHandler, "--print와 --inbound는 함께 사용할 수 없습니다")
	}
	if overrides.OutboundHandler != nil {
		return configError("outbound_handler", *overrides.OutboundHandler, "--print와 --outbound는 함께 사용할 수 없습니다")
	}
	return nil
}

// Resolve는 기본값, 설정 파일, 명령줄 계층을 병합하고 경로를 정규화합니다.
// 설정 파일이 없으면 경고만 남기고 계속하며, 파싱할 수 없는 파일은 오류입니다.
func Resolve(overrides Layer, logger zerolog.Logger) (Settings, error) {
	if err := CheckOverrides(overrides); err != nil {
		return Settings{}, err
	}

	defaults := Defaults()
	configPath := *defaults.ConfigPath
	if overrides.ConfigPath != nil {
		configPath = *overrides.ConfigPath
	}
	configPath, err := NormalizePath(configPath)
	if err != nil {
		return Settings{}, configError("config_path", configPath, err.Error())
	}

	file, err := LoadFile(configPath)
	if err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			return Settings{}, err
		}
		logger.Warn().Str("config_path", configPath).Msg("설정 파일이 없어 기본값과 명령줄 옵션만 사용합니다")
		file = Layer{}
	} else {
		logger.Debug().Str("config_path", configPath).Msg("설정 파일을 읽었습니다")
	}

	s := Merge(defaults, file, overrides)
	s.ConfigPath = configPath

	if err := s.normalizePaths(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) normalizePaths() error {
	lockfile, err := NormalizePath(s.LockfilePath)
	if err != nil {
		return configError("lockfile_path", s.LockfilePath, err.Error())
	}
	inbound, err := NormalizeCommand(s.InboundHandler)
	if err != nil {
		return configError("inbound_handler", s.InboundHandler, err.Error())
	}
	outbound, err := NormalizeCommand(s.OutboundHandler)
	if err != nil {
		return configError("outbound_handler", s.OutboundHandler, err.Error())
	}

	s.LockfilePath = lockfile
	s.InboundHandler = inbound
	s.OutboundHandler = outbound
	return nil
}
