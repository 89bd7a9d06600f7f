package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
// Identifier matches either username or email.
type LoginDTO struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetPasswordDTO redeems a signed reset token for a new password.
type ResetPasswordDTO struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetTokenResponse carries a freshly minted password reset token for
// the admin to hand to the user out of band.
type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

type LoginResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Identifier == "" {
		return ValidationError{Msg: "username or email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return ValidationError{Msg: "current password is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new password is required"}
	}
	return nil
}

func (d ResetPasswordDTO) Validate() error {
	if d.Token == "" {
		return ValidationError{Msg: "token is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new password is required"}
	}
	return nil
}
