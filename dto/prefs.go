package dto

type UnlockRequest struct {
	Level int `json:"level" binding:"required,min=1"`
}

type ProgressResponse struct {
	UnlockedLevel int `json:"unlockedLevel"`
}
