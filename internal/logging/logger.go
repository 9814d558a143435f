package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New는 진단 메시지용 로거를 반환합니다. verbose이면 debug 레벨까지 출력합니다.
// 표준 출력은 출력 모드 결과 전용이므로 w에는 보통 표준 에러를 넘깁니다.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(console).Level(level).With().Timestamp().Str("app", "voipms-sms-sync").Logger()
}
