package dto

// UpdateProfileRequest updates the caller's profile. The avatar URL is stored
// verbatim; the backend never checks that it resolves.
type UpdateProfileRequest struct {
	Username  string  `json:"username" binding:"required" example:"janedoe"`
	FullName  *string `json:"fullName,omitempty" example:"Jane Doe"`
	Bio       *string `json:"bio,omitempty"`
	Education *string `json:"education,omitempty"`
	Skills    *string `json:"skills,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
