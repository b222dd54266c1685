package payload

type CreateProductRequest struct {
	Title       string   `json:"title"       validate:"required,max=200"`
	Slug        string   `json:"slug"        validate:"omitempty,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Brand       string   `json:"brand"       validate:"omitempty,oneof=Apple Samsung Lenovo"`
	Category    string   `json:"category"    validate:"omitempty,mongodb"`
	Quantity    int      `json:"quantity"    validate:"gte=0"`
	Images      []string `json:"images"      validate:"omitempty,dive,url"`
	Color       string   `json:"color"       validate:"omitempty,oneof=Black Brown Red"`
}

type UpdateProductRequest struct {
	Title       *string   `json:"title"       validate:"omitempty,min=1,max=200"`
	Slug        *string   `json:"slug"        validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty"`
	Price       *float64  `json:"price"       validate:"omitempty,gte=0"`
	Brand       *string   `json:"brand"       validate:"omitempty,oneof=Apple Samsung Lenovo"`
	Category    *string   `json:"category"    validate:"omitempty,mongodb"`
	Quantity    *int      `json:"quantity"    validate:"omitempty,gte=0"`
	Sold        *int      `json:"sold"        validate:"omitempty,gte=0"`
	Images      *[]string `json:"images"      validate:"omitempty,dive,url"`
	Color       *string   `json:"color"       validate:"omitempty,oneof=Black Brown Red"`
	Ratings     *float64  `json:"ratings"     validate:"omitempty,gte=0,lte=5"`
}
