package errors

var (
	// Domain errors — used in usecase/repository
	ErrUsernameTaken           = AlreadyExists("username is already taken")
	ErrEmailTaken              = AlreadyExists("email is already registered")
	ErrInvalidUsername         = InvalidArg("username must be 3-50 chars, letters, numbers and underscores only")
	ErrInvalidPassword         = InvalidArg("password must be at least 8 characters")
	ErrInvalidCredentials      = Unauthorized("invalid username or password")
	ErrInvalidAccessToken      = Unauthorized("invalid access token")
	ErrInvalidRefreshToken     = Unauthorized("invalid or expired refresh token")
	ErrUserNotFound            = NotFound("user not found")
	ErrChatNotFound            = NotFound("chat not found")
	ErrFileNotFound            = NotFound("file not found")
	ErrChatAccessDenied        = Forbidden("chat does not belong to the current user")
	ErrInvalidVerificationCode = Unauthorized("invalid verification code")
	ErrEmailMissing            = FailedPrecondition("user has no email to verify")
	ErrUnsupportedFileType     = InvalidArg("file type is not allowed")
	ErrEmptyMessage            = InvalidArg("message content is required")
	ErrEmptyFile               = InvalidArg("uploaded file is empty")
)

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}

func ErrLoginFailed(cause error) error {
	return Wrap(CodeUnauthenticated, "login failed", cause)
}

func ErrAssistantFailed(cause error) error {
	return Wrap(CodeInternal, "assistant request failed", cause)
}

func ErrRunTimedOut(cause error) error {
	return Wrap(CodeDeadlineExceeded, "assistant run did not complete in time", cause)
}
