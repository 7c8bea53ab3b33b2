package mapper

import (
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{ID: user.ID, Name: user.Name, Email: user.Email}
}
