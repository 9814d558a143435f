package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"voipms-sms-sync/internal/config"
	"voipms-sms-sync/internal/interfaces"
	"voipms-sms-sync/internal/processor"
	"voipms-sms-sync/internal/watermark"
	"voipms-sms-sync/pkg/models"
)

// SyncService는 한 번의 가져오기/디스패치/워터마크 갱신 과정을 조율합니다.
// 모든 처리는 순차적이며 핸들러는 한 번에 하나씩 실행됩니다.
type SyncService struct {
	fetcher   interfaces.MessageFetcher
	sink      interfaces.Sink
	watermark interfaces.WatermarkStore
	logger    zerolog.Logger
}

// NewSyncService는 새로운 동기화 서비스를 생성합니다
func NewSyncService(
	f interfaces.MessageFetcher,
	s interfaces.Sink,
	w interfaces.WatermarkStore,
	logger zerolog.Logger) *SyncService {
	return &SyncService{
		fetcher:   f,
		sink:      s,
		watermark: w,
		logger:    logger,
	}
}

// Execute는 검증된 설정으로 동기화를 한 번 실행합니다.
// 원격 서비스가 실패 상태를 돌려주면 디스패치와 워터마크 쓰기 없이 그 오류를 반환합니다.
// 워터마크는 전체 패스가 끝난 뒤 후보가 시작 값보다 클 때만 한 번 저장됩니다.
func (s *SyncService) Execute(ctx context.Context, settings config.Settings) (*models.SyncResult, error) {
	result := &models.SyncResult{
		StartWatermark: settings.Watermark(),
		NewWatermark:   settings.Watermark(),
	}

	messages, err := s.fetcher.Fetch(ctx, settings.DID)
	if err != nil {
		return result, err
	}
	result.Fetched = len(messages)
	s.logger.Debug().Int("count", len(messages)).Str("did", settings.DID).Msg("메시지를 가져왔습니다")

	p := processor.NewProcessor(settings.NewOnly, settings.DirectionFilter, result.StartWatermark)
	candidate, err := s.dispatchAll(ctx, p, messages, result)
	if err != nil {
		return result, err
	}

	if err := s.sink.Flush(); err != nil {
		return result, fmt.Errorf("출력 완료 실패: %w", err)
	}

	if err := s.persistWatermark(candidate, result); err != nil {
		return result, err
	}
	return result, nil
}

// dispatchAll은 받은 순서대로 메시지를 분류하고 전달하며, 전달한 메시지 중 가장 큰 ID를 반환합니다
func (s *SyncService) dispatchAll(
	ctx context.Context,
	p *processor.Processor,
	messages []models.Message,
	result *models.SyncResult) (uint64, error) {

	var candidate uint64
	for _, msg := range messages {
		if err := s.checkContextCancellation(ctx); err != nil {
			return 0, err
		}

		switch p.Decide(msg) {
		case processor.SkipStale:
			result.SkippedStale++
			continue
		case processor.SkipDirection:
			result.SkippedDirection++
			continue
		}

		payload, err := processor.Encode(msg)
		if err != nil {
			return 0, err
		}

		// 핸들러 실패는 경고만 남기고 계속 진행합니다. 전달을 시도한 메시지는 워터마크 후보에 포함됩니다.
		if err := s.sink.Deliver(ctx, msg, payload); err != nil {
			result.HandlerFailures++
			s.logger.Warn().Err(err).Uint64("id", msg.ID).Str("type", string(msg.Direction)).Msg("핸들러 실행 실패")
		}
		result.Dispatched++

		if msg.ID > candidate {
			candidate = msg.ID
		}
	}
	return candidate, nil
}

// checkContextCancellation은 컨텍스트 취소를 확인합니다
func (s *SyncService) checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// persistWatermark는 후보가 시작 워터마크와 저장된 값보다 클 때만 잠금 파일을 씁니다.
// --latest로 낮춘 시작 값은 이번 실행의 기준일 뿐이며 잠금 파일의 값은 줄어들지 않습니다.
func (s *SyncService) persistWatermark(candidate uint64, result *models.SyncResult) error {
	if candidate <= result.StartWatermark {
		s.logger.Debug().Uint64("watermark", result.StartWatermark).Msg("새 메시지가 없어 워터마크를 유지합니다")
		return nil
	}

	stored, err := s.watermark.Read()
	switch {
	case errors.Is(err, watermark.ErrMalformed):
		s.logger.Warn().Err(err).Msg("잠금 파일 값을 해석할 수 없어 덮어씁니다")
		stored = 0
	case err != nil:
		return err
	}
	if candidate <= stored {
		s.logger.Debug().Uint64("stored", stored).Uint64("candidate", candidate).Msg("저장된 워터마크가 더 커서 유지합니다")
		return nil
	}

	if err := s.watermark.Write(candidate); err != nil {
		return err
	}
	result.NewWatermark = candidate
	result.WatermarkPersisted = true
	s.logger.Debug().Uint64("watermark", candidate).Msg("워터마크를 갱신했습니다")
	return nil
}
