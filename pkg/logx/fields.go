package logx

const (
	FieldAppName     = "app-name"
	FieldAppVersion  = "app-version"
	FieldAuctionUUID = "auction-uuid"
	FieldCount       = "count"
	FieldDurationMs  = "duration-ms"
	FieldError       = "error"
	FieldHTTPMethod  = "http-method"
	FieldIP          = "ip"
	FieldItem        = "item"
	FieldPage        = "page"
	FieldStack       = "stack"
	FieldTraceID     = "trace-id"
	FieldURL         = "url"
)
