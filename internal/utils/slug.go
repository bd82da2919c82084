package utils

import "strings"

// Slugify приводит заголовок к безопасному для файловой системы и URL виду:
// нижний регистр, все последовательности не-буквенно-цифровых символов
// схлопываются в один дефис, крайние дефисы отбрасываются.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeFilename готовит имя загруженного файла к использованию в пути
// репозитория: пробелы заменяются дефисами, остаются только
// латиница/цифры/точка/дефис/подчёркивание.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte('-')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
