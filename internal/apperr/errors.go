package apperr

import "errors"

// Сентинельные ошибки сервиса. Хендлеры сопоставляют их со статусами HTTP
// через errors.Is, поэтому удалённые сбои всегда отличимы от локальной
// валидации: клиент понимает, что можно повторить, а что — нет.
var (
	// ErrInvalidInput — не заполнены обязательные поля или дата нечитаема (400).
	ErrInvalidInput = errors.New("некорректные входные данные")

	// ErrInvalidCredentials — неверный пароль администратора (401).
	ErrInvalidCredentials = errors.New("неверные учётные данные")

	// ErrNotFound — пост с таким id отсутствует в зеркале (404).
	ErrNotFound = errors.New("пост не найден")

	// ErrRemoteUnconfigured — GitHub-репозиторий не настроен. Для пайплайна
	// публикации это сигнал деградированного пути, а не ошибка.
	ErrRemoteUnconfigured = errors.New("github-репозиторий не настроен")

	// ErrRemoteConflict — маркер версии устарел, коммит отклонён (409).
	// Не повторяется автоматически: тихий ретрай — риск перезаписи.
	ErrRemoteConflict = errors.New("конфликт версий в удалённом репозитории")

	// ErrRemoteUnavailable — сеть/таймаут/5xx со стороны GitHub (500),
	// запрос можно безопасно повторить целиком.
	ErrRemoteUnavailable = errors.New("удалённый репозиторий недоступен")
)
