package request

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=50"`
	Lang        *string `json:"lang,omitempty" validate:"omitempty,max=10"`
}

// UserEmailRequest identifies an existing user by email address.
type UserEmailRequest struct {
	Email string `json:"email"`
}
