package processor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"voipms-sms-sync/pkg/models"
)

// Decision은 메시지 하나에 대한 처리 결정입니다
type Decision int

const (
	// Dispatch는 메시지를 핸들러나 출력 버퍼로 보냅니다
	Dispatch Decision = iota
	// SkipStale은 new_only 모드에서 워터마크 이하인 메시지입니다
	SkipStale
	// SkipDirection은 방향 필터와 맞지 않는 메시지입니다
	SkipDirection
)

func (d Decision) String() string {
	switch d {
	case Dispatch:
		return "dispatch"
	case SkipStale:
		return "skip_stale"
	case SkipDirection:
		return "skip_direction"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Processor는 실행 시작 시점의 워터마크와 필터로 메시지를 분류합니다
type Processor struct {
	newOnly   bool
	direction string
	watermark uint64
}

// NewProcessor는 새로운 분류기를 생성합니다. direction은 "", "in", "out" 중 하나입니다.
func NewProcessor(newOnly bool, direction string, watermark uint64) *Processor {
	return &Processor{
		newOnly:   newOnly,
		direction: direction,
		watermark: watermark,
	}
}

// Decide는 메시지를 디스패치할지 결정합니다.
// 건너뛴 메시지는 새 워터마크 후보에 포함되지 않습니다.
func (p *Processor) Decide(msg models.Message) Decision {
	if p.newOnly && msg.ID <= p.watermark {
		return SkipStale
	}
	if !msg.Direction.Matches(p.direction) {
		return SkipDirection
	}
	return Dispatch
}

// Encode는 메시지의 표준 JSON 표현을 한 줄 문자열로 만듭니다. HTML 문자는 이스케이프하지 않습니다.
func Encode(msg models.Message) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg.ToPayload()); err != nil {
		return "", fmt.Errorf("메시지 %d JSON 변환 실패: %w", msg.ID, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
