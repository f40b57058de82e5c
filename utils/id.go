package utils

import (
	"github.com/MildKid/DegReviews/config"
	"github.com/google/uuid"
)

// GenerateID 生成访客身份用的UUIDv4
func GenerateID() string {
	id := uuid.New().String()
	config.Logger.Debugw("生成新ID", "id", id)
	return id
}
