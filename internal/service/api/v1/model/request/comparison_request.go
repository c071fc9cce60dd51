package request

// SaveComparisonRequest 상품 비교 저장 요청
type SaveComparisonRequest struct {
	// Name 비어 있으면 저장 날짜로 이름을 만든다
	Name       string   `json:"name,omitempty" validate:"omitempty,max=100" example:"여름 셔츠 비교"`
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=5,dive,required" example:"p1,p2"`
}
