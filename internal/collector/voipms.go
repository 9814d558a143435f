package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"voipms-sms-sync/internal/interfaces"
	"voipms-sms-sync/pkg/models"
)

const (
	methodGetSMS  = "getSMS"
	statusSuccess = "success"
)

// VoipMSCollector는 voip.ms REST API에서 DID의 SMS를 가져옵니다
type VoipMSCollector struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ interfaces.MessageFetcher = (*VoipMSCollector)(nil)

// Option은 VoipMSCollector를 설정합니다
type Option func(*VoipMSCollector)

// WithHTTPClient는 사용할 HTTP 클라이언트를 지정합니다
func WithHTTPClient(hc *http.Client) Option {
	return func(c *VoipMSCollector) {
		c.httpClient = hc
	}
}

// WithLogger는 로거를 지정합니다
func WithLogger(logger zerolog.Logger) Option {
	return func(c *VoipMSCollector) {
		c.logger = logger
	}
}

// NewVoipMSCollector는 새로운 voip.ms 수집기를 생성합니다
func NewVoipMSCollector(baseURL, username, password string, opts ...Option) *VoipMSCollector {
	c := &VoipMSCollector{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError는 원격 서비스가 success가 아닌 상태를 돌려준 경우입니다
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("voip.ms 응답 상태 %s: %s", e.Status, StatusText(e.Status))
}

// smsResponse는 getSMS 응답 본문입니다. voip.ms는 모든 값을 문자열로 보냅니다.
type smsResponse struct {
	Status string      `json:"status"`
	SMS    []smsRecord `json:"sms"`
}

type smsRecord struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	DID     string `json:"did"`
	Contact string `json:"contact"`
	Message string `json:"message"`
}

// Fetch는 DID에 속한 모든 메시지를 한 번의 요청으로 가져옵니다.
// 응답 순서를 그대로 유지하며 ID 순으로 정렬하지 않습니다.
func (c *VoipMSCollector) Fetch(ctx context.Context, did string) ([]models.Message, error) {
	query := url.Values{}
	query.Set("api_username", c.username)
	query.Set("api_password", c.password)
	query.Set("method", methodGetSMS)
	query.Set("did", did)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("method", methodGetSMS).Str("did", did).Msg("voip.ms 요청")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voip.ms 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("voip.ms HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var decoded smsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("응답 JSON 파싱 실패: %w", err)
	}
	if decoded.Status != statusSuccess {
		return nil, &StatusError{Status: decoded.Status}
	}

	messages := make([]models.Message, 0, len(decoded.SMS))
	for _, r := range decoded.SMS {
		msg, err := r.toMessage()
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r smsRecord) toMessage() (models.Message, error) {
	id, err := strconv.ParseUint(r.ID, 10, 64)
	if err != nil {
		return models.Message{}, fmt.Errorf("메시지 ID가 정수가 아닙니다: %q", r.ID)
	}
	return models.Message{
		ID:           id,
		Timestamp:    r.Date,
		Body:         r.Message,
		Direction:    models.DirectionFromType(r.Type),
		Counterparty: r.Contact,
		DID:          r.DID,
	}, nil
}
