package service

import "errors"

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrSlugTaken      = errors.New("slug already taken")
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidContent = errors.New("invalid post content")
)
