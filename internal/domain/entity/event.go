package entity

// TaskEventType names a task lifecycle transition.
type TaskEventType string

const (
	TaskEventCreated TaskEventType = "task.created"
	TaskEventUpdated TaskEventType = "task.updated"
	TaskEventDeleted TaskEventType = "task.deleted"
)

// Valid reports whether t is a known event type.
func (t TaskEventType) Valid() bool {
	switch t {
	case TaskEventCreated, TaskEventUpdated, TaskEventDeleted:
		return true
	default:
		return false
	}
}
