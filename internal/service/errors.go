package service

import "errors"

var (
	// ErrNotFound - запрошенный пользователь, инцидент или уведомление не существует
	ErrNotFound = errors.New("not found")
	// ErrValidation - входные данные не прошли проверку до начала изменений
	ErrValidation = errors.New("validation failed")
	// ErrConflict - запись с таким уникальным ключом уже существует
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized - неверные учетные данные или неактивная учетная запись
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden - действие над чужим ресурсом
	ErrForbidden = errors.New("forbidden")
)
