package types

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	IsAdmin  bool   `json:"isAdmin"`
}
