package models

import "strconv"

// Direction은 메시지의 방향(수신/발신)을 나타냅니다
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// inboundTypeFlag는 원격 서비스가 수신 메시지에 부여하는 type 값입니다
const inboundTypeFlag = "1"

// DirectionFromType은 원격 서비스의 type 플래그로 방향을 결정합니다.
// "1"만 수신이며 그 외의 값은 모두 발신으로 취급합니다.
func DirectionFromType(flag string) Direction {
	if flag == inboundTypeFlag {
		return DirectionInbound
	}
	return DirectionOutbound
}

// Matches는 방향 필터("in", "out", "")가 이 방향과 일치하는지 확인합니다
func (d Direction) Matches(filter string) bool {
	switch filter {
	case "":
		return true
	case "in":
		return d == DirectionInbound
	case "out":
		return d == DirectionOutbound
	default:
		return false
	}
}

// Message는 원격 서비스에서 받은 SMS 한 건을 나타냅니다
type Message struct {
	ID           uint64    `json:"id" yaml:"id"`
	Timestamp    string    `json:"date" yaml:"date"`
	Body         string    `json:"message" yaml:"message"`
	Direction    Direction `json:"type" yaml:"type"`
	Counterparty string    `json:"contact" yaml:"contact"`
	DID          string    `json:"did" yaml:"did"`
}

// Payload는 핸들러와 출력 모드에 전달되는 메시지의 표준 JSON 표현입니다.
// 필드 순서가 곧 JSON 키 순서이며 모든 값은 문자열입니다.
type Payload struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
}

// ToPayload는 메시지를 표준 표현으로 변환합니다.
// 수신 메시지는 상대방이 발신자, 발신 메시지는 DID가 발신자입니다.
func (m Message) ToPayload() Payload {
	p := Payload{
		ID:      strconv.FormatUint(m.ID, 10),
		Date:    m.Timestamp,
		Message: m.Body,
		Type:    string(m.Direction),
	}
	if m.Direction == DirectionInbound {
		p.Sender, p.Recipient = m.Counterparty, m.DID
	} else {
		p.Sender, p.Recipient = m.DID, m.Counterparty
	}
	return p
}

// SyncResult는 한 번의 동기화 실행 결과를 나타냅니다
type SyncResult struct {
	Fetched            int    `json:"fetched" yaml:"fetched"`
	Dispatched         int    `json:"dispatched" yaml:"dispatched"`
	SkippedStale       int    `json:"skipped_stale" yaml:"skipped_stale"`
	SkippedDirection   int    `json:"skipped_direction" yaml:"skipped_direction"`
	HandlerFailures    int    `json:"handler_failures" yaml:"handler_failures"`
	StartWatermark     uint64 `json:"start_watermark" yaml:"start_watermark"`
	NewWatermark       uint64 `json:"new_watermark" yaml:"new_watermark"`
	WatermarkPersisted bool   `json:"watermark_persisted" yaml:"watermark_persisted"`
}
