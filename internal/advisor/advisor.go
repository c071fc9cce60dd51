// Package advisor 외부 스타일 추천 엔진을 호출하여 상황별 코디와 색상 추천을 제공합니다.
package advisor

import (
	"context"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/darkkaiser/pricewise-server/pkg/maputil"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const component = "advisor.service"

// Kind 추천 종류
type Kind string

const (
	KindAdvice  Kind = "advice"
	KindOutfits Kind = "outfits"
	KindColors  Kind = "colors"
)

// ParseKind 지원하지 않는 종류이면 InvalidInput 에러를 반환합니다.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAdvice, KindOutfits, KindColors:
		return k, nil
	default:
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 추천 종류입니다: '%s' (advice, outfits, colors 중 하나)", s)
	}
}

// Runner 외부 엔진 실행기. subprocess.Runner가 구현합니다.
type Runner interface {
	Run(ctx context.Context, payload any) ([]byte, error)
}

// AdviceRequest 스타일 추천 요청. 성별과 행사 종류는 필수입니다.
type AdviceRequest struct {
	Gender string `json:"gender" validate:"required"`
	Event  string `json:"event" validate:"required"`

	Age    int     `json:"age,omitempty" validate:"omitempty,min=1,max=120"`
	Height float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Weight float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Chest  float64 `json:"chest,omitempty" validate:"omitempty,gt=0"`
	Waist  float64 `json:"waist,omitempty" validate:"omitempty,gt=0"`
	Hip    float64 `json:"hip,omitempty" validate:"omitempty,gt=0"`

	FaceShape string `json:"face_shape,omitempty"`
	HairColor string `json:"hair_color,omitempty"`
	HairType  string `json:"hair_type,omitempty"`
	SkinTone  string `json:"skin_tone,omitempty"`
	Season    string `json:"season,omitempty"`

	// FavoriteColors 쉼표로 구분된 선호 색상
	FavoriteColors  string `json:"favorite_colors,omitempty"`
	CulturalFactors string `json:"cultural_factors,omitempty"`

	PreferredHeelHeight string `json:"preferred_heel_height,omitempty"`
	PreferredShoeType   string `json:"preferred_shoe_type,omitempty"`
}

// normalize 엔진에 전달하기 전에 기본값을 채우고 소문자로 맞춘다.
func (r AdviceRequest) normalize() AdviceRequest {
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Event = strings.ToLower(strings.TrimSpace(r.Event))
	if r.SkinTone == "" {
		r.SkinTone = "neutral"
	}
	if r.Season == "" {
		r.Season = "current"
	}
	if r.CulturalFactors == "" {
		r.CulturalFactors = "desi"
	}
	return r
}

// OutfitRequest 상황별 코디 추천 요청
type OutfitRequest struct {
	Occasion         string `json:"occasion" validate:"required"`
	Weather          string `json:"weather,omitempty"`
	BodyType         string `json:"body_type,omitempty"`
	ColorPreferences string `json:"color_preferences,omitempty"`
}

// Recommendation 엔진이 반환하는 코디 추천
type Recommendation struct {
	KurtaShirt   string   `json:"kurta_shirt"`
	PantsShalwar string   `json:"pants_shalwar"`
	Footwear     string   `json:"footwear"`
	Accessories  []string `json:"accessories"`
	Colors       []string `json:"colors"`
	Fabric       []string `json:"fabric"`
	StylingTips  string   `json:"styling_tips"`
	OutfitImages []string `json:"outfit_images,omitempty"`
}

// Advice 스타일 추천 결과
type Advice struct {
	Recommendation Recommendation `json:"recommendation"`
	SkinTone       string         `json:"skin_tone"`
	Source         string         `json:"source"`
	Event          string         `json:"event,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	Season         string         `json:"season,omitempty"`
}

// engineResponse 엔진 출력. 필드 타입이 느슨하므로 mapstructure의 약한 타입 변환으로 해석한다.
type engineResponse struct {
	Success        *bool          `json:"success"`
	Error          string         `json:"error"`
	Recommendation Recommendation `json:"recommendation"`
	SkinTone       string         `json:"skin_tone"`
	Source         string         `json:"source"`
}

// Service 스타일 추천 서비스
type Service struct {
	runner   Runner
	validate *validator.Validate
}

// NewService 새로운 Service를 생성합니다. runner가 nil이면 엔진을 사용하는 추천은 Unavailable 에러를 반환합니다.
func NewService(runner Runner) *Service {
	return &Service{
		runner:   runner,
		validate: newValidator(),
	}
}

// Advise 사용자 정보와 행사 종류에 맞는 스타일을 추천합니다.
func (s *Service) Advise(ctx context.Context, req AdviceRequest) (*Advice, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	req = req.normalize()

	resp, err := s.call(ctx, req)
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"event":  req.Event,
		"gender": req.Gender,
		"source": resp.Source,
	}).Info("스타일 추천 생성 완료")

	return &Advice{
		Recommendation: resp.Recommendation,
		SkinTone:       resp.SkinTone,
		Source:         resp.Source,
		Event:          req.Event,
		Gender:         req.Gender,
		Season:         req.Season,
	}, nil
}

// DefaultStylingTips 엔진이 코디 팁을 주지 않았을 때의 안내 문구
const DefaultStylingTips = "Choose outfits that make you feel confident!"

// Outfits 행사 종류에 맞는 코디를 추천합니다.
func (s *Service) Outfits(ctx context.Context, req OutfitRequest) (*Advice, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	season := req.Weather
	if season == "" {
		season = "current"
	}

	resp, err := s.call(ctx, map[string]any{
		"event":            strings.ToLower(strings.TrimSpace(req.Occasion)),
		"season":           season,
		"body_type":        req.BodyType,
		"favorite_colors":  req.ColorPreferences,
		"cultural_factors": "desi",
	})
	if err != nil {
		return nil, err
	}

	if resp.Recommendation.StylingTips == "" {
		resp.Recommendation.StylingTips = DefaultStylingTips
	}

	return &Advice{
		Recommendation: resp.Recommendation,
		SkinTone:       resp.SkinTone,
		Source:         resp.Source,
		Event:          req.Occasion,
		Season:         season,
	}, nil
}

// call 엔진을 실행하고 출력을 해석합니다. 엔진 관련 실패는 모두 Unavailable로 노출합니다.
func (s *Service) call(ctx context.Context, userData any) (*engineResponse, error) {
	if s.runner == nil {
		return nil, apperrors.New(apperrors.Unavailable, "스타일 추천 엔진이 설정되지 않았습니다")
	}

	out, err := s.runner.Run(ctx, map[string]any{
		"user_data":  userData,
		"image_path": nil,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "스타일 추천 엔진을 사용할 수 없습니다")
	}

	resp, err := decodeResponse(out)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "스타일 추천 엔진의 응답을 해석할 수 없습니다")
	}
	if resp.Success != nil && !*resp.Success {
		return nil, apperrors.Newf(apperrors.Unavailable, "스타일 추천 엔진이 실패를 반환했습니다: %s", resp.Error)
	}
	if resp.Source == "" {
		resp.Source = "ai_service"
	}

	return resp, nil
}

func decodeResponse(out []byte) (*engineResponse, error) {
	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "엔진 출력이 JSON 객체가 아닙니다")
	}

	resp, err := maputil.Decode[engineResponse](raw)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "엔진 출력의 필드 형식이 올바르지 않습니다")
	}
	return resp, nil
}
