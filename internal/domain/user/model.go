package user

import "time"

type User struct {
	ID        int
	Email     string
	Password  string // хэш
	Verified  bool
	CreatedAt time.Time
}

// Credentials - email и пароль из запросов регистрации и входа
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
