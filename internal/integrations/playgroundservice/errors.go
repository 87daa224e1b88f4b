package playgroundservice

import "errors"

var (
	// ErrPlaygroundNotFound возвращается, когда площадка не найдена в каталоге
	ErrPlaygroundNotFound = errors.New("playgroundservice client: playground not found")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, timeout)
	ErrInternal = errors.New("playgroundservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("playgroundservice client: invalid response")
)
