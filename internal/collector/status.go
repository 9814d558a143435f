package collector

// statusText는 voip.ms 상태 코드를 사람이 읽을 수 있는 설명으로 바꿉니다
var statusText = map[string]string{
	"api_not_enabled":      "API has not been enabled or has been disabled",
	"api_limit_exceeded":   "API requests limit per minute has been reached",
	"ip_not_enabled":       "This IP is not enabled for API use",
	"invalid_credentials":  "Username or Password is incorrect",
	"missing_credentials":  "Username or Password was not provided",
	"missing_method":       "Method must be provided",
	"invalid_method":       "This is not a valid Method",
	"invalid_did":          "This is not a valid DID",
	"missing_did":          "DID was not provided",
	"invalid_date":         "This is not a valid date",
	"invalid_daterange":    "Date Range should not be more than 92 days",
	"invalid_sms":          "This is not a valid SMS",
	"invalid_type":         "This is not a valid Type",
	"no_sms":               "There are no SMS messages",
	"sms_toolong":          "The SMS message must be 160 characters or less",
	"limit_reached":        "You have reached the maximum number of messages allowed per day",
	"did_not_sms_enabled":  "SMS is not enabled for this DID",
	"sms_failed":           "The SMS message was not sent",
	"unavailable_function": "This function is not available",
}

// StatusText는 상태 코드의 설명을 반환합니다. 모르는 코드는 코드 그대로 반환합니다.
func StatusText(status string) string {
	if text, ok := statusText[status]; ok {
		return text
	}
	if status == "" {
		return "empty status"
	}
	return status
}
