package dto

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"user@university.edu"`
	Username string `json:"username" binding:"required" example:"janedoe"`
	Password string `json:"password" binding:"required" example:"s3cretPass"`
	FullName string `json:"fullName,omitempty" example:"Jane Doe"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@university.edu"`
	Password string `json:"password" binding:"required" example:"s3cretPass"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}
