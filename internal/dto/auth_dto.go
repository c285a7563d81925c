package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CrearUsuarioRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"required,oneof=admin empleado"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string `json:"nombre"   validate:"omitempty,min=2"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin empleado"`
}

type ActualizarPerfilRequest struct {
	Nombre string `json:"nombre" validate:"omitempty,min=2"`
	Email  string `json:"email"  validate:"omitempty,email"`
}

type UsuarioResponse struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	Rol          string  `json:"rol"`
	UltimoAcceso *string `json:"ultimo_acceso,omitempty"`
	Activo       bool    `json:"activo"`
}
