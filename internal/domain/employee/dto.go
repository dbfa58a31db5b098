package employee

type EmployeeResponse struct {
	ID              string  `json:"id"`
	FullName        string  `json:"name"`
	Role            Role    `json:"role"`
	ContractedHours *string `json:"contracted_hours"`
}
