package models

// Post — запись локального зеркала. Поля повторяют схему posts.json:
// createdAt/updatedAt — unix-миллисекунды, remotePath выставляется только
// если для поста существует канонический документ в GitHub-репозитории.
type Post struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Content    string   `json:"content"`
	Images     []string `json:"images,omitempty"`
	RemotePath string   `json:"remotePath,omitempty"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  *int64   `json:"updatedAt,omitempty"`
}

// Asset — загруженное изображение: имя исходного файла, путь в репозитории
// и raw-URL для вставки в документ. Отдельного жизненного цикла нет —
// ассет принадлежит посту, при создании которого был загружен.
type Asset struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}
