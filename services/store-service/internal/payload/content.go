package payload

type CreateBlogRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"    validate:"required,max=100"`
	Author      string `json:"author"      validate:"omitempty,max=100"`
	Image       string `json:"image"       validate:"omitempty,url"`
}

type UpdateBlogRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty"`
	Category    *string `json:"category"    validate:"omitempty,max=100"`
	Author      *string `json:"author"      validate:"omitempty,max=100"`
	Image       *string `json:"image"       validate:"omitempty,url"`
}

type CreatePostRequest struct {
	Title    string   `json:"title"    validate:"required,max=200"`
	Content  string   `json:"content"  validate:"required"`
	Category string   `json:"category" validate:"omitempty,max=100"`
	Author   string   `json:"author"   validate:"omitempty,max=100"`
	Tags     []string `json:"tags"     validate:"omitempty,dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Title    *string   `json:"title"    validate:"omitempty,min=1,max=200"`
	Content  *string   `json:"content"  validate:"omitempty"`
	Category *string   `json:"category" validate:"omitempty,max=100"`
	Author   *string   `json:"author"   validate:"omitempty,max=100"`
	Tags     *[]string `json:"tags"     validate:"omitempty,dive,min=1,max=50"`
}
