package uow

import "errors"

var (
	ErrRepositoryNotRegistered     = errors.New("uow: repository is not registered")
	ErrRepositoryAlreadyRegistered = errors.New("uow: repository name already taken")
	ErrInvalidRepositoryType       = errors.New("uow: repository does not satisfy requested type")
)
