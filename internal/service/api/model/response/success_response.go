package response

// SuccessResponse API 성공 응답
type SuccessResponse struct {
	// ResultCode 처리 결과 코드 (0: 성공)
	ResultCode int    `json:"result_code" example:"0"`
	Message    string `json:"message,omitempty" example:"성공"`
}

// DataResponse 데이터를 포함한 API 성공 응답
type DataResponse struct {
	ResultCode int `json:"result_code" example:"0"`
	Data       any `json:"data"`
}
