package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
}

type PartnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CNPJ  string `json:"cnpj"`
	Email string `json:"email"`
}

type EventResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	TotalSpots     int    `json:"totalSpots"`
	PartnerID      string `json:"partnerId"`
	RemainingSpots int    `json:"remainingSpots"`
}

type SubscriptionResponse struct {
	EventID       string `json:"eventId"`
	EventTicketID string `json:"eventTicketId"`
	CustomerID    string `json:"customerId"`
	Ordering      int    `json:"ordering"`
	ReservedAt    string `json:"reservedAt"`
}
