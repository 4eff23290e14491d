package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderActorName     = "X-Actor-Name"
	HeaderActorEmail    = "X-Actor-Email"

	ContextKeyRequestID  = "request_id"
	ContextKeyActorName  = "actor_name"
	ContextKeyActorEmail = "actor_email"

	TableDashboardSnapshots = "dashboard_snapshots"

	// SystemActor is recorded when a mutation has no authenticated caller.
	SystemActor = "system"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
)
