// Package mark 알림 메시지에 사용하는 이모지 상수를 모아 둔 패키지입니다.
package mark

// Mark 이모지 상수 타입
type Mark string

const (
	// 가격 하락
	PriceDown Mark = "📉"

	// 가격 상승
	PriceUp Mark = "📈"

	// 비교 그룹 내 최저가
	BestPrice Mark = "🔥"

	// 신규 추적
	New Mark = "🆕"

	// 품절
	Unavailable Mark = "🚫"

	// 예측 만료/오류
	Alert Mark = "🚨"
)

// WithSpace 앞에 구분용 공백을 붙여 반환합니다. 빈 마크면 빈 문자열을 반환합니다.
func (m Mark) WithSpace() string {
	if m == "" {
		return ""
	}
	return " " + string(m)
}

func (m Mark) String() string {
	return string(m)
}

// ForPriceChange 이전 가격 대비 현재 가격의 변화 방향에 맞는 마크를 반환합니다.
func ForPriceChange(previous, current float64) Mark {
	switch {
	case current < previous:
		return PriceDown
	case current > previous:
		return PriceUp
	default:
		return ""
	}
}
