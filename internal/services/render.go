package services

import (
	"fmt"
	"strings"
	"time"

	"urbexblog/internal/models"
	"urbexblog/internal/utils"
)

const postsDir = "_posts"

// RenderResult — канонический документ поста и производные от него данные.
type RenderResult struct {
	// Path — путь документа в репозитории: _posts/<YYYY-MM-DD>-<slug>.md.
	Path string
	// Document — frontmatter + тело + строки вставок изображений.
	Document string
	// Body — тело поста с добавленными вставками; именно оно сохраняется
	// в локальном зеркале.
	Body string
}

// RenderDocument — чистая функция: по полям поста и списку опубликованных
// ассетов детерминированно строит документ и путь. now нужен только для
// запасного имени, когда из заголовка не получился слаг. Два поста с
// одинаковым заголовком в один день дают один путь — коллизия осознанная,
// второй коммит обновит документ первого.
func RenderDocument(title string, date time.Time, tags, content string, assets []models.Asset, now time.Time) RenderResult {
	isoDate := date.UTC().Format("2006-01-02T15:04:05.000Z")

	slug := utils.Slugify(title)
	if slug == "" {
		slug = fmt.Sprintf("post-%d", now.UnixMilli())
	}

	body := content
	if len(assets) > 0 {
		embeds := make([]string, 0, len(assets))
		for _, a := range assets {
			embeds = append(embeds, fmt.Sprintf("![%s](%s)", a.Name, a.URL))
		}
		body = body + "\n\n" + strings.Join(embeds, "\n\n")
	}

	lines := []string{
		"---",
		fmt.Sprintf("title: %q", title),
		fmt.Sprintf("date: %q", isoDate),
	}
	if tagLine := renderTags(tags); tagLine != "" {
		lines = append(lines, tagLine)
	}
	lines = append(lines, "---", "")
	frontmatter := strings.Join(lines, "\n")

	return RenderResult{
		Path:     fmt.Sprintf("%s/%s-%s.md", postsDir, isoDate[:10], slug),
		Document: frontmatter + body + "\n",
		Body:     body,
	}
}

func renderTags(tags string) string {
	if strings.TrimSpace(tags) == "" {
		return ""
	}
	parts := strings.Split(tags, ",")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		quoted = append(quoted, fmt.Sprintf("%q", strings.TrimSpace(p)))
	}
	return "tags: [" + strings.Join(quoted, ", ") + "]"
}
