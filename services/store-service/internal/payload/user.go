package payload

type UpdateUserRequest struct {
	FirstName *string `json:"firstname" validate:"omitempty,max=100"`
	LastName  *string `json:"lastname"  validate:"omitempty,max=100"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Mobile    *string `json:"mobile"    validate:"omitempty,e164"`
}
