package schema

// LoginPayload is the wire shape of a login request.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshPayload is the wire shape of a token refresh request.
type RefreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairPayload is the wire shape of a successful login or refresh
// response. Refresh rotates both tokens.
type TokenPairPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
