package utils

import (
	"github.com/google/uuid"

	"github.com/sandrogomez-dev/Task-Flow/config"
)

func GenerateID() string {
	id := uuid.New().String()
	config.Logger.Debugw("生成新ID", "id", id)
	return id
}
