package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldRecordID    = "record_id"
	FieldSource      = "source"
	FieldAmountCents = "amount_cents"
	FieldOrderName   = "order_name"
	FieldCustomer    = "customer_name"
	FieldTxType      = "transaction_type"
	FieldSkipped     = "skipped_records"
	FieldMonths      = "months"
	FieldExportRef   = "export_ref"
)

// Components defines standard component names
const (
	ComponentApp          = "app"
	ComponentHTTP         = "http"
	ComponentStorage      = "storage"
	ComponentAMQP         = "amqp"
	ComponentWorker       = "worker"
	ComponentLedger       = "ledger"
	ComponentReport       = "report"
	ComponentExport       = "export"
	ComponentOrders       = "orders"
	ComponentTransactions = "transactions"
	ComponentCatalog      = "catalog"
	ComponentCache        = "cache"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpAggregate = "aggregate"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
