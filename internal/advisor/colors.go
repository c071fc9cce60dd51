package advisor

import (
	"strings"
)

// ColorRequest 피부 톤 기반 색상 추천 요청
type ColorRequest struct {
	SkinTone string `json:"skin_tone" validate:"required"`
	Occasion string `json:"occasion,omitempty"`
}

// ColorPalette 피부 톤별 색상 팔레트
type ColorPalette struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Neutral   []string `json:"neutral"`
	Avoid     []string `json:"avoid"`
}

// OccasionColors 상황별로 고른 색상
type OccasionColors struct {
	Formal []string `json:"formal"`
	Casual []string `json:"casual"`
	Party  []string `json:"party"`
}

// ColorAdvice 색상 추천 결과
type ColorAdvice struct {
	SkinTone         string          `json:"skin_tone"`
	Palette          ColorPalette    `json:"color_palette"`
	OccasionSpecific *OccasionColors `json:"occasion_specific"`
}

var palettes = map[string]ColorPalette{
	"warm": {
		Primary:   []string{"Gold", "Orange", "Red", "Yellow", "Peach"},
		Secondary: []string{"Brown", "Olive Green", "Rust", "Coral"},
		Neutral:   []string{"Cream", "Warm White", "Beige", "Camel"},
		Avoid:     []string{"Cool Blue", "Purple", "Cool Pink"},
	},
	"cool": {
		Primary:   []string{"Blue", "Purple", "Cool Pink", "Silver"},
		Secondary: []string{"Navy", "Teal", "Emerald Green", "Cool Red"},
		Neutral:   []string{"Pure White", "Cool Grey", "Black"},
		Avoid:     []string{"Orange", "Gold", "Warm Yellow"},
	},
	"neutral": {
		Primary:   []string{"All colors work well"},
		Secondary: []string{"Earth tones", "Jewel tones", "Pastels"},
		Neutral:   []string{"White", "Grey", "Beige", "Black"},
		Avoid:     []string{"Very bright neons"},
	},
}

// Colors 피부 톤에 맞는 색상 팔레트를 반환합니다. 알 수 없는 피부 톤은 neutral로 처리합니다.
// 외부 엔진을 사용하지 않으므로 엔진 장애와 무관하게 동작합니다.
func (s *Service) Colors(req ColorRequest) (*ColorAdvice, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	palette, ok := palettes[strings.ToLower(strings.TrimSpace(req.SkinTone))]
	if !ok {
		palette = palettes["neutral"]
	}

	advice := &ColorAdvice{
		SkinTone: req.SkinTone,
		Palette:  palette,
	}

	if req.Occasion != "" {
		advice.OccasionSpecific = &OccasionColors{
			Formal: head(palette.Primary, 3),
			Casual: head(palette.Secondary, 3),
			Party:  append(head(palette.Primary, 2), head(palette.Secondary, 1)...),
		}
	}

	return advice, nil
}

// head 앞에서 최대 n개를 복사하여 반환합니다.
func head(s []string, n int) []string {
	if len(s) < n {
		n = len(s)
	}
	return append([]string(nil), s[:n]...)
}
