package interfaces

import (
	"context"

	"voipms-sms-sync/pkg/models"
)

// MessageFetcher는 원격 서비스에서 DID의 메시지를 가져오는 인터페이스입니다
type MessageFetcher interface {
	// Fetch는 한 번의 요청으로 모든 메시지를 받은 순서대로 반환합니다
	Fetch(ctx context.Context, did string) ([]models.Message, error)
}

// Handler는 메시지 하나를 외부 명령에 넘기는 인터페이스입니다
type Handler interface {
	// Invoke는 표준 JSON 표현을 유일한 인자로 전달하고 종료 코드를 반환합니다
	Invoke(ctx context.Context, payload string) (int, error)
}

// Sink는 디스패치된 메시지를 받는 쪽입니다 (핸들러 실행 또는 출력 버퍼)
type Sink interface {
	// Deliver는 메시지 하나를 전달합니다. 실패해도 루프는 계속됩니다.
	Deliver(ctx context.Context, msg models.Message, payload string) error
	// Flush는 전체 패스가 끝난 뒤 한 번 호출됩니다
	Flush() error
}

// WatermarkStore는 저장된 워터마크를 읽고 새 값을 저장하는 인터페이스입니다
type WatermarkStore interface {
	Read() (uint64, error)
	Write(value uint64) error
}
