package user

// NOTE: commands travel from handler to usecase
// NOTE: DTOs travel from usecase to handler

// Input commands
type RegisterCommand struct {
	Username string
	Password string
	Email    *string
}

type LoginCommand struct {
	Username string
	Password string
}

type VerifyEmailCommand struct {
	Email string
	Code  string
}

// Output DTOs
type UserDTO struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Email         *string `json:"email,omitempty"`
	EmailVerified bool    `json:"email_verified"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type EmailVerificationDTO struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Message       string `json:"message"`
}
