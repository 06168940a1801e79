package logging

// Field names shared by all log call sites so entries stay filterable.
const (
	FieldFile        = "file_path"
	FieldDescription = "description"
	FieldNormalized  = "normalized"
	FieldCategory    = "category"
	FieldScore       = "score"
	FieldThreshold   = "threshold"
	FieldTagCount    = "tag_count"
	FieldReason      = "reason"
	FieldRow         = "row"
	FieldOperation   = "operation"
	FieldProvider    = "provider"
	FieldModel       = "model"
	FieldStatus      = "status"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldSkipped     = "skipped"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldRequestID   = "request_id"
	FieldRemoteAddr  = "remote_addr"
)
