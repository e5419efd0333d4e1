package metrics

type Outcome string

const (
	Success Outcome = "success"
	// Rejected is a request refused because of its input: bad or expired
	// token, unknown account, mismatching passwords.
	Rejected Outcome = "rejected"
	Failure  Outcome = "failure"
)

const (
	StepSignUp        = "sign_up"
	StepLogIn         = "log_in"
	StepRequestReset  = "request_reset"
	StepValidateToken = "validate_token"
	StepResetPassword = "reset_password"
)

// Recorder counts how the steps of the password reset flow end.
type Recorder interface {
	Observe(step string, outcome Outcome)
}
