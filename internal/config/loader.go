package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile은 설정 파일을 읽어 파일 계층을 만듭니다.
// .yaml/.yml 확장자는 YAML로, 그 외에는 JSON으로 해석하며 알 수 없는 키는 거부합니다.
// 파일이 없으면 os.ErrNotExist를 감싼 오류를 반환합니다.
func LoadFile(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Layer{}, fmt.Errorf("설정 파일이 없습니다 (%s): %w", path, err)
		}
		return Layer{}, configError("config_path", path, "설정 파일을 읽을 수 없습니다: "+err.Error())
	}

	var layer Layer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &layer)
	default:
		err = decodeJSON(data, &layer)
	}
	if err != nil {
		return Layer{}, configError("config_path", path, "설정 파일 파싱 오류: "+err.Error())
	}

	return layer, nil
}

func decodeJSON(data []byte, layer *Layer) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(layer); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("JSON 객체 뒤에 추가 데이터가 있습니다")
	}
	return nil
}

func decodeYAML(data []byte, layer *Layer) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(layer); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
