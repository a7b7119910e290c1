package model

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrMemberExists    = errors.New("user is already on the project team")
	ErrUnknownUser     = errors.New("user does not exist")
)

const (
	MsgMemberExists = "The fields ProjectID, UserID must make a unique set."
)

// MsgUnknownUser theo format lỗi primary key không hợp lệ
func MsgUnknownUser(id int64) string {
	return `Invalid pk "` + formatID(id) + `" - object does not exist.`
}
