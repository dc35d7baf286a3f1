package transport

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
}

type CreatePartnerRequest struct {
	Name  string `json:"name"`
	CNPJ  string `json:"cnpj"`
	Email string `json:"email"`
}

type CreateEventRequest struct {
	PartnerID  string `json:"partnerId"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	TotalSpots int    `json:"totalSpots"`
}

type SubscribeRequest struct {
	CustomerID string `json:"customerId"`
}
