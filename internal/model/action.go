package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Действия пользователя, фиксируемые в журнале.
const (
	ActionRegister         = "user.register"
	ActionLogin            = "user.login"
	ActionLogout           = "user.logout"
	ActionUploadManuscript = "manuscript.upload"
	ActionDeleteManuscript = "manuscript.delete"
	ActionGenerate         = "generation.request"
)

// ActionLogEntry - запись журнала действий пользователя.
// Журнал ведется best-effort: сбой записи логируется, но не роняет запрос.
type ActionLogEntry struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	Action    string          `json:"action" db:"action"`
	EntityID  *uuid.UUID      `json:"entity_id,omitempty" db:"entity_id"`
	Detail    json.RawMessage `json:"detail,omitempty" db:"detail"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
