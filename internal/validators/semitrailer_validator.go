package validators

type SemitrailerCreateRequest struct {
	Plate    string  `json:"plate" validate:"required,plate"`
	Type     string  `json:"type" validate:"omitempty,max=60"`
	Capacity float64 `json:"capacity" validate:"omitempty,min=0"`
	Status   string  `json:"status" validate:"omitempty,oneof=activo inactivo mantenimiento"`
	Notes    string  `json:"notes" validate:"omitempty,max=1000"`
}

type SemitrailerUpdateRequest struct {
	Type     *string  `json:"type" validate:"omitempty,max=60"`
	Capacity *float64 `json:"capacity" validate:"omitempty,min=0"`
	Status   *string  `json:"status" validate:"omitempty,oneof=activo inactivo mantenimiento"`
	Notes    *string  `json:"notes" validate:"omitempty,max=1000"`
}

func ValidateSemitrailerCreate(req *SemitrailerCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateSemitrailerUpdate(req *SemitrailerUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}
