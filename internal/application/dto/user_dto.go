package dto

// UserResponse salida de un usuario (sin credencial).
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse salida con el token de sesión.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
