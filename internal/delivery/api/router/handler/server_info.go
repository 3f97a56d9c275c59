package handler

import "time"

// ServerInfo describes the running process. Clients compare StartedAt to detect restarts.
type ServerInfo struct {
	StartedAt time.Time
}

// NewServerInfo records the start time of the process.
func NewServerInfo() *ServerInfo {
	return &ServerInfo{StartedAt: time.Now().UTC()}
}
