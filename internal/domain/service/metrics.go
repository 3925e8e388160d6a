package service

// MetricsRecorder receives business counters from the use cases.
type MetricsRecorder interface {
	OrderSubmitted()
	OrderStatusUpdated(status string)
	Login(result string)
	SessionsPurged(n int)
	EventPublishFailed()
}

// Login results recorded by MetricsRecorder.Login.
const (
	LoginResultSuccess = "success"
	LoginResultFailure = "failure"
)
