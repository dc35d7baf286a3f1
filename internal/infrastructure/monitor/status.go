package monitor

import "time"

type Status struct {
	PostgreSQL    bool      `json:"postgresql"`
	Redis         bool      `json:"redis"`
	OutboxBacklog int       `json:"outbox_backlog"`
	DeadLetters   int       `json:"dead_letters"`
	LastCheck     time.Time `json:"last_check"`
}
