package config

// 선택 항목의 기본값
const (
	DefaultConfigPath      = "~/.voipms-sms/config.json"
	DefaultLockfilePath    = "~/.voipms-sms/latest.lock"
	DefaultInboundHandler  = "~/.voipms-sms/inbound"
	DefaultOutboundHandler = "~/.voipms-sms/outbound"
	DefaultAPIURL          = "https://voip.ms/api/v1/rest.php"
)

// Defaults는 가장 낮은 우선순위의 기본값 계층을 반환합니다
func Defaults() Layer {
	configPath := DefaultConfigPath
	lockfile := DefaultLockfilePath
	inbound := DefaultInboundHandler
	outbound := DefaultOutboundHandler
	apiURL := DefaultAPIURL
	newOnly, printMode := false, false

	return Layer{
		ConfigPath:      &configPath,
		LockfilePath:    &lockfile,
		InboundHandler:  &inbound,
		OutboundHandler: &outbound,
		NewOnly:         &newOnly,
		PrintMode:       &printMode,
		APIURL:          &apiURL,
	}
}
