package auth

//revive:disable

// RegisterInput represents the request body for creating a user.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	Name            string `json:"name" validate:"omitempty,max=100"`
	DefaultCurrency string `json:"default_currency" validate:"omitempty,len=3,alpha"`
}

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the API representation of a user. The password hash never leaves the service.
type UserDTO struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name,omitempty"`
	DefaultCurrency string `json:"default_currency"`
	CreatedAt       string `json:"created_at"`
}
