package forms

type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterForm struct {
	FullName        string `json:"fullName" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,strongpw"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}
