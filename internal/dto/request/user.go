package request

type UpdateAvatarRequest struct {
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}
