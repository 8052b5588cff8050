package ai

import "errors"

// Ошибки генерации маркетинговых текстов.
var (
	// ErrInvalidGenerationType - передан неизвестный тип генерации.
	ErrInvalidGenerationType = errors.New("invalid generation type")
	// ErrEmptyInput - не передан исходный текст рукописи.
	ErrEmptyInput = errors.New("empty input text")
	// ErrMissingCredential - не настроен API ключ. Проверяется до сетевого вызова.
	ErrMissingCredential = errors.New("ai api key is not configured")
	// ErrUpstream - провайдер вернул неуспешный HTTP статус.
	// Детали (код, тело ответа) остаются в обернутой ошибке и попадают только в логи.
	ErrUpstream = errors.New("upstream completion request failed")
	// ErrMalformedResponse - успешный статус, но тело ответа не удалось разобрать
	// или в нем нет непустого сгенерированного текста.
	ErrMalformedResponse = errors.New("malformed completion response")
	// ErrGenerationFailed - единственная ошибка, видимая снаружи диспетчера.
	// Оборачивает любые сбои клиента, не раскрывая формулировки провайдера.
	ErrGenerationFailed = errors.New("generation failed")
)
