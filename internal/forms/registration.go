package forms

// Registration is the sign-up form.
type Registration struct {
	Email         string `form:"email" binding:"required,email,max=180"`
	PlainPassword string `form:"plainPassword" binding:"required,min=6,max=4096"`
	AgreeTerms    bool   `form:"agreeTerms" binding:"required"`
}

// Login is the sign-in form.
type Login struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}
