package logging

// Standardized field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldCategory   = "category"
	FieldCount      = "count"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldFile       = "file_path"
	FieldInterval   = "interval"
	FieldRange      = "range"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldTotal      = "total"
	FieldModel      = "model"
	FieldEventType  = "event_type"
	FieldSubscriber = "subscriber"
	FieldDriver     = "driver"
)
