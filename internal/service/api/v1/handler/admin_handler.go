package handler

import (
	"github.com/darkkaiser/pricewise-server/internal/importer"
	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/response"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// ImportCatalogHandler godoc
// @Summary 카탈로그 수집 실행
// @Description 설정된 수집 소스에서 상품을 가져옵니다. source_id를 지정하면 해당 소스만 수집합니다.
// @Description 일부 소스가 실패해도 200을 반환하며, 실패한 소스는 결과의 error 필드에 사유가 담깁니다.
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body request.ImportRequest false "수집 대상"
// @Success 200 {object} response.DataResponse{data=response.ImportResponse}
// @Failure 403 {object} response.ErrorResponse "관리자 권한 없음"
// @Failure 404 {object} response.ErrorResponse "등록되지 않은 수집 소스"
// @Failure 409 {object} response.ErrorResponse "수집이 이미 진행 중"
// @Failure 503 {object} response.ErrorResponse "수집기 미설정"
// @Security BearerAuth
// @Router /api/v1/admin/import [post]
func (h *Handler) ImportCatalogHandler(c echo.Context) error {
	if h.importer == nil {
		return NewErrImporterUnavailable()
	}

	req := new(request.ImportRequest)
	if c.Request().ContentLength != 0 {
		if err := c.Bind(req); err != nil {
			return NewErrInvalidBody()
		}
	}

	ctx := c.Request().Context()

	var results []importer.Result
	var runErr error
	if req.SourceID != "" {
		res, err := h.importer.RunSource(ctx, req.SourceID)
		if err != nil && res.Found == 0 {
			return err
		}
		if err != nil {
			res.Error = err.Error()
		}
		results, runErr = []importer.Result{res}, err
	} else {
		res, err := h.importer.Run(ctx)
		if err != nil && len(res) == 0 {
			return err
		}
		results, runErr = res, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	fields := applog.Fields{
		"user_id": auth.MustGetUser(c).ID,
		"sources": len(results),
		"failed":  failed,
	}
	if runErr != nil {
		fields["error"] = runErr
	}
	applog.WithComponentAndFields(component, fields).Info("관리자 카탈로그 수집 실행")

	return httputil.Data(c, response.ImportResponse{
		Results: results,
		Failed:  failed,
	})
}
