package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldReferer       = "referer"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldWindow        = "window"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldBudget        = "budget"
	FieldSpent         = "spent"
	FieldAlertID       = "alert_id"
	FieldFilename      = "filename"
	FieldRowCount      = "row_count"
	FieldSheetsRef     = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAnalytics = "analytics"
	ComponentBackend   = "backend"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpList     = "list"
	OpExport   = "export"
	OpEvaluate = "evaluate"
	OpDismiss  = "dismiss"
	OpPublish  = "publish"
	OpValidate = "validate"
	OpParse    = "parse"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRequestID adds request ID field
func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithClientIP adds client IP field
func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithWindow adds the analytics window label
func (f LogFields) WithWindow(label string) LogFields {
	f[FieldWindow] = label
	return f
}

// WithBudget adds budget evaluation fields
func (f LogFields) WithBudget(category string, budget, spent float64) LogFields {
	f[FieldCategory] = category
	f[FieldBudget] = budget
	f[FieldSpent] = spent
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
