package exporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"voipms-sms-sync/internal/interfaces"
	"voipms-sms-sync/pkg/models"
)

// PrintExporter는 출력 모드에서 메시지를 모았다가 하나의 JSON 배열로 씁니다
type PrintExporter struct {
	out      io.Writer
	payloads []string
}

var _ interfaces.Sink = (*PrintExporter)(nil)

// NewPrintExporter는 새로운 출력 모드 내보내기 도구를 생성합니다
func NewPrintExporter(out io.Writer) *PrintExporter {
	return &PrintExporter{out: out}
}

// Deliver는 표준 표현을 받은 순서대로 버퍼에 추가합니다
func (e *PrintExporter) Deliver(_ context.Context, _ models.Message, payload string) error {
	e.payloads = append(e.payloads, payload)
	return nil
}

// Flush는 `[a,b,...]` 한 줄을 출력합니다. 메시지가 없으면 `[]`입니다.
func (e *PrintExporter) Flush() error {
	line := "[" + strings.Join(e.payloads, ",") + "]\n"
	if _, err := io.WriteString(e.out, line); err != nil {
		return fmt.Errorf("출력 쓰기 실패: %w", err)
	}
	return nil
}

// HandlerExporter는 메시지 방향에 맞는 핸들러를 하나씩 실행합니다
type HandlerExporter struct {
	inbound  interfaces.Handler
	outbound interfaces.Handler
}

var _ interfaces.Sink = (*HandlerExporter)(nil)

// NewHandlerExporter는 수신/발신 핸들러로 내보내기 도구를 생성합니다
func NewHandlerExporter(inbound, outbound interfaces.Handler) *HandlerExporter {
	return &HandlerExporter{inbound: inbound, outbound: outbound}
}

// Deliver는 핸들러가 종료될 때까지 기다립니다. 실행 실패나 0이 아닌 종료 코드는 오류로 반환됩니다.
func (e *HandlerExporter) Deliver(ctx context.Context, msg models.Message, payload string) error {
	h := e.outbound
	if msg.Direction == models.DirectionInbound {
		h = e.inbound
	}
	if h == nil {
		return fmt.Errorf("%s 핸들러가 설정되지 않았습니다", msg.Direction)
	}

	code, err := h.Invoke(ctx, payload)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("%s 핸들러 종료 코드 %d", msg.Direction, code)
	}
	return nil
}

// Flush는 핸들러 모드에서 할 일이 없습니다
func (e *HandlerExporter) Flush() error {
	return nil
}
