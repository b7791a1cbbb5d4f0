package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest adds the phone number that receives order notifications.
type RegisterRequest struct {
	AuthRequest
	Phone string `json:"phone"`
}
