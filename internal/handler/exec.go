// Package handler는 메시지마다 외부 명령을 실행하는 Handler 구현을 제공합니다.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"voipms-sms-sync/internal/interfaces"
)

// ExecHandler는 `path <payload>` 형태로 외부 프로그램을 실행합니다.
// 프로세스가 끝날 때까지 기다리며 시간 제한은 없습니다.
type ExecHandler struct {
	path   string
	stdout io.Writer
	stderr io.Writer
}

var _ interfaces.Handler = (*ExecHandler)(nil)

// NewExecHandler는 표준 출력과 표준 에러를 상속하는 핸들러를 생성합니다
func NewExecHandler(path string) *ExecHandler {
	return &ExecHandler{path: path, stdout: os.Stdout, stderr: os.Stderr}
}

// WithOutput은 핸들러 프로세스의 출력 대상을 바꾼 복사본을 반환합니다
func (h *ExecHandler) WithOutput(stdout, stderr io.Writer) *ExecHandler {
	return &ExecHandler{path: h.path, stdout: stdout, stderr: stderr}
}

// Path는 실행할 명령을 반환합니다
func (h *ExecHandler) Path() string {
	return h.path
}

// Invoke는 핸들러를 실행하고 종료 코드를 반환합니다.
// 0이 아닌 종료 코드는 오류와 함께 반환되며, 실행 자체에 실패하면 -1입니다.
func (h *ExecHandler) Invoke(ctx context.Context, payload string) (int, error) {
	cmd := exec.CommandContext(ctx, h.path, payload)
	cmd.Stdout = h.stdout
	cmd.Stderr = h.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), fmt.Errorf("핸들러 %s 종료 코드 %d", h.path, exitErr.ExitCode())
	}
	return -1, fmt.Errorf("핸들러 %s 실행 실패: %w", h.path, err)
}
