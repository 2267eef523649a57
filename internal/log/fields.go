package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSaleID      = "sale_id"
	FieldPartner     = "partner"
	FieldItem        = "item"
	FieldAmountCents = "amount_cents"
	FieldUserEmail   = "user_email"
	FieldRecordCount = "record_count"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentDashboard = "dashboard"
	ComponentStore     = "store"
	ComponentFeed      = "feed"
	ComponentAuth      = "auth"
	ComponentSession   = "session"
	ComponentReport    = "report"
	ComponentSheets    = "sheets"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentIngest    = "ingest"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpInsert   = "insert"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpExport   = "export"
	OpValidate = "validate"
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

// WithSale adds sale-related fields
func (f LogFields) WithSale(id, partner, item string, amountCents int64) LogFields {
	f[FieldSaleID] = id
	f[FieldPartner] = partner
	f[FieldItem] = item
	f[FieldAmountCents] = amountCents
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
