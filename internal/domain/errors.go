package domain

import "errors"

var ErrNotFound = errors.New("registro não encontrado")
