package loggers

// Service and transport fields.
const (
	FieldApp         = "app"
	FieldComponent   = "component"
	FieldStoreDriver = "store_driver"

	FieldRequestID  = "request_id"
	FieldHttpMethod = "http_method"
	FieldHttpRoute  = "http_route"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldClient     = "client"
	FieldDuration   = "duration"

	FieldErrorCode     = "error_code"
	FieldErrorCategory = "error_category"
	FieldErrorStack    = "error_stack"
)

// Metric update pipeline fields.
const (
	FieldMessageID  = "message_id"
	FieldMessageIDs = "message_ids"
	FieldPartition  = "partition"
	FieldAttempt    = "attempt"
	FieldBucketPK   = "bucket_pk"
	FieldBucketSK   = "bucket_sk"
	FieldAmount     = "amount"
)
