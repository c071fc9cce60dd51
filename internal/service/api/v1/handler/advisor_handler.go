package handler

import (
	"github.com/darkkaiser/pricewise-server/internal/advisor"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

// AdvisorHandler godoc
// @Summary 스타일 추천
// @Description 추천 종류에 따라 요청 본문의 형식이 다릅니다.
// @Description - advice: advisor.AdviceRequest (gender, event 필수)
// @Description - outfits: advisor.OutfitRequest (occasion 필수)
// @Description - colors: advisor.ColorRequest (skin_tone 필수, 엔진 없이 내장 팔레트 사용)
// @Tags Advisor
// @Accept json
// @Produce json
// @Param kind path string true "추천 종류" Enums(advice, outfits, colors)
// @Param body body advisor.AdviceRequest true "추천 요청"
// @Success 200 {object} response.DataResponse{data=advisor.Advice}
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 503 {object} response.ErrorResponse "추천 엔진 사용 불가"
// @Security BearerAuth
// @Router /api/v1/advisor/{kind} [post]
func (h *Handler) AdvisorHandler(c echo.Context) error {
	kind, err := advisor.ParseKind(c.Param("kind"))
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	switch kind {
	case advisor.KindOutfits:
		var req advisor.OutfitRequest
		if err := c.Bind(&req); err != nil {
			return NewErrInvalidBody()
		}
		advice, err := h.advisor.Outfits(ctx, req)
		if err != nil {
			return err
		}
		return httputil.Data(c, advice)

	case advisor.KindColors:
		var req advisor.ColorRequest
		if err := c.Bind(&req); err != nil {
			return NewErrInvalidBody()
		}
		colors, err := h.advisor.Colors(req)
		if err != nil {
			return err
		}
		return httputil.Data(c, colors)

	default:
		var req advisor.AdviceRequest
		if err := c.Bind(&req); err != nil {
			return NewErrInvalidBody()
		}
		advice, err := h.advisor.Advise(ctx, req)
		if err != nil {
			return err
		}
		return httputil.Data(c, advice)
	}
}
