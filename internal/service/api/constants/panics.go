package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired          = "AppConfig는 필수입니다"
	PanicMsgStoreRequired              = "Store는 필수입니다"
	PanicMsgNotificationSenderRequired = "NotificationSender는 필수입니다"
	PanicMsgAuthenticatorRequired      = "Authenticator는 필수입니다"

	// PanicMsgAuthContextUserNotFound 인증 미들웨어 없이 사용자 정보를 요구한 경우
	PanicMsgAuthContextUserNotFound = "Auth: Context에서 사용자 정보를 가져올 수 없습니다. 인증 미들웨어가 적용되었는지 확인해주세요. (원인: %v)"

	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimiting: requestsPerSecond는 양수여야 합니다 (현재값: %v)"
	PanicMsgRateLimitBurstInvalid             = "RateLimiting: burst는 양수여야 합니다 (현재값: %d)"
)

// v1 핸들러 의존성
const (
	PanicMsgComparisonServiceRequired = "ComparisonService는 필수입니다"
	PanicMsgTrackerServiceRequired    = "TrackerService는 필수입니다"
	PanicMsgAdvisorServiceRequired    = "AdvisorService는 필수입니다"
)
