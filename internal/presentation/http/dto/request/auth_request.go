package request

// LoginRequest represents a login request. Username may also be an email.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest represents a registration request. The camelCase keys are
// the ones the register page posts.
type RegisterRequest struct {
	FullName        string `json:"fullName" form:"fullName"`
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}
