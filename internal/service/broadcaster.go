package service

// Admin feed event types
const (
	EventRecordSaved    = "record_saved"
	EventRecordsCleared = "records_cleared"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToAdmins(msgType string, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToAdmins(string, interface{}) {}
