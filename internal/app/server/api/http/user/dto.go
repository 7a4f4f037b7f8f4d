package user

import "organizer/internal/domain/user"

type credentialsInput struct {
	Body user.Credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type verifyInput struct {
	Body struct {
		Token string `json:"token" minLength:"1" doc:"Токен из письма"`
	}
}

type resetRequestInput struct {
	Body struct {
		Email string `json:"email" format:"email" doc:"Email пользователя"`
	}
}

type resetConfirmInput struct {
	Body struct {
		Token    string `json:"token" minLength:"1" doc:"Токен из письма"`
		Password string `json:"password" minLength:"8" maxLength:"72" doc:"Новый пароль"`
	}
}

type statusOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}
