package ws

import "time"

type ConnInfo struct {
	ConnID      string
	AccountID   int
	IP          string
	RequestID   string
	ConnectedAt time.Time
}
