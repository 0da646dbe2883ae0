package domain

import "errors"

var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateAlreadyExists = errors.New("template already exists")
	ErrInvalidPayload        = errors.New("invalid merge payload")
)
