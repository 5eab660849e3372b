package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetMe          = "user profile retrieved successfully"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessSendVerifyMail = "verification email sent successfully"
	MessageSuccessVerifyEmail    = "email verified successfully"
	MessageSuccessForgotPassword = "password reset email sent successfully"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to retrieve user profile"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedSendVerifyMail = "failed to send verification email"
	MessageFailedVerifyEmail    = "failed to verify email"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWrongCredentials   = errors.New("wrong email or password")
	ErrUserBanned         = errors.New("user is banned")
	ErrEmailNotVerified   = errors.New("email not verified")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=32"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		Username string                `json:"username" form:"username" validate:"omitempty,min=3,max=32"`
		Avatar   *multipart.FileHeader `json:"avatar" form:"avatar"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	UserProfile struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		Email      string `json:"email"`
		Role       string `json:"role"`
		AvatarURL  string `json:"avatar_url,omitempty"`
		IsVerified bool   `json:"is_verified"`
	}
)
