package constant

const (
	CacheSep = "|"

	ContextKeyRequestID  = "requestId"
	ContextKeySession    = "session"
	ContextKeyTranslator = "translator"

	RequestIDHeader = "X-Emisi-Request-ID"

	ETLMutexName        = "emisi:etl:run"
	ETLCompletedSubject = "emisi.etl.completed"
	ETLStreamName       = "emisi-etl"
	SessionStorePrefix  = "emisi:session"
	SessionCookieName   = "emisi_session"
)
