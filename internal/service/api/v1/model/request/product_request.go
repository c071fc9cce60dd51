package request

// CreateProductRequest 상품 등록 요청
type CreateProductRequest struct {
	Title        string `json:"title" validate:"required,max=300" example:"Crew Neck T-Shirt"`
	Brand        string `json:"brand,omitempty" validate:"omitempty,max=100" example:"Outfitters"`
	Category     string `json:"category" validate:"required,max=100" example:"Men"`
	ProductType  string `json:"product_type,omitempty" example:"T-Shirt"`
	FitType      string `json:"fit_type,omitempty" example:"Regular"`
	MaterialType string `json:"material_type,omitempty" example:"Cotton"`
	PrimaryColor string `json:"primary_color,omitempty" example:"Black"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=5000"`

	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0" example:"1299"`
	OriginalPrice   *float64 `json:"original_price,omitempty" validate:"omitempty,gte=0" example:"1999"`
	DiscountPercent *float64 `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100" example:"35"`

	ImageURL   string `json:"image_url,omitempty" validate:"omitempty,url"`
	ProductURL string `json:"product_url,omitempty" validate:"omitempty,url"`

	Availability  *bool    `json:"availability,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Rating        float64  `json:"rating,omitempty" validate:"gte=0,lte=5"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,required"`
}
