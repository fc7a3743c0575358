package auth

// LoginDTO carries the credentials posted to the login endpoint.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO carries the rotation request body.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError marks a bad request body so the handler can answer
// 400 instead of 500.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email must not be empty"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password must not be empty"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token must not be empty"}
	}
	return nil
}
