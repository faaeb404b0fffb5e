package validators

type ClientCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	RUT         string `json:"rut" validate:"omitempty,rut"`
	ContactName string `json:"contact_name" validate:"omitempty,max=120"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Country     string `json:"country" validate:"omitempty,max=100"`
}

type ClientUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=150"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=120"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	Active      *bool   `json:"active"`
}

func ValidateClientCreate(req *ClientCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateClientUpdate(req *ClientUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}
