package forms

type UploadForm struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Path        string `json:"path" binding:"required,imagefile"`
}

type AvatarForm struct {
	Path string `json:"path" binding:"required,imagefile"`
}
