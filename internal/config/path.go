package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath는 경로를 절대 경로로 만듭니다.
// "~/"는 홈 디렉토리, "./"와 "/"로 시작하지 않는 상대 경로는 현재 작업 디렉토리 기준입니다.
func NormalizePath(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("홈 디렉토리를 찾을 수 없습니다: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("현재 디렉토리를 찾을 수 없습니다: %w", err)
	}
	return filepath.Join(cwd, path), nil
}

// NormalizeCommand는 핸들러 값을 정규화합니다.
// "/"가 없는 명령어 이름은 PATH 검색 대상이므로 그대로 둡니다.
func NormalizeCommand(command string) (string, error) {
	if command == "~" || strings.HasPrefix(command, "~/") || strings.Contains(command, "/") {
		return NormalizePath(command)
	}
	return command, nil
}
