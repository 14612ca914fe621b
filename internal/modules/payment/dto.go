package payment

type CreatePaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cash card" example:"card"`
	CardNumber    string `json:"card_number" example:"4111111111111111"`
	ExpDate       string `json:"exp_date" example:"09/27"`
}
