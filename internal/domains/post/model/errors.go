package model

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotAuthor    = errors.New("caller is not the post author")
	ErrInvalidScope = errors.New("invalid post scope")
)

// Body của publish/archive khi caller không phải author, client hiện tại parse đúng chuỗi này
const MsgPermissionDenied = "Permission denied"
