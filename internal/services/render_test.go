package services

import (
	"strings"
	"testing"
	"time"

	"urbexblog/internal/models"
)

var (
	testDate = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 1, 2, 18, 30, 0, 0, time.UTC)
)

func TestRenderDocumentPath(t *testing.T) {
	res := RenderDocument("Old Mill", testDate, "", "Ventured in at dusk.", nil, testNow)

	if res.Path != "_posts/2025-01-02-old-mill.md" {
		t.Errorf("неожиданный путь документа: %q", res.Path)
	}
}

func TestRenderDocumentDeterministic(t *testing.T) {
	a := RenderDocument("Old Mill", testDate, "urbex, night", "тело", nil, testNow)
	b := RenderDocument("Old Mill", testDate, "urbex, night", "тело", nil, testNow)

	if a.Path != b.Path || a.Document != b.Document || a.Body != b.Body {
		t.Error("рендер недетерминирован при одинаковых входных данных")
	}
}

func TestRenderDocumentCollision(t *testing.T) {
	// одинаковый заголовок и день — одинаковый путь (осознанная коллизия)
	a := RenderDocument("Old Mill", testDate, "", "первый", nil, testNow)
	b := RenderDocument("Old Mill", testDate.Add(5*time.Hour), "", "второй", nil, testNow)

	if a.Path != b.Path {
		t.Errorf("ожидался одинаковый путь, получено %q и %q", a.Path, b.Path)
	}
}

func TestRenderDocumentFrontmatter(t *testing.T) {
	res := RenderDocument(`The "Mill"`, testDate, "urbex, night", "тело поста", nil, testNow)

	if !strings.HasPrefix(res.Document, "---\n") {
		t.Error("документ не начинается с frontmatter")
	}
	if !strings.Contains(res.Document, `title: "The \"Mill\""`) {
		t.Errorf("кавычки в заголовке не экранированы:\n%s", res.Document)
	}
	if !strings.Contains(res.Document, `date: "2025-01-02T00:00:00.000Z"`) {
		t.Errorf("нет ISO-даты во frontmatter:\n%s", res.Document)
	}
	if !strings.Contains(res.Document, `tags: ["urbex", "night"]`) {
		t.Errorf("теги не отрендерены:\n%s", res.Document)
	}
	if !strings.Contains(res.Document, "тело поста") {
		t.Error("тело поста потеряно")
	}
	if !strings.HasSuffix(res.Document, "\n") {
		t.Error("документ не оканчивается переводом строки")
	}
}

func TestRenderDocumentNoTagsLine(t *testing.T) {
	res := RenderDocument("Old Mill", testDate, "  ", "тело", nil, testNow)
	if strings.Contains(res.Document, "tags:") {
		t.Errorf("пустые теги не должны давать строку tags:\n%s", res.Document)
	}
}

func TestRenderDocumentEmbeds(t *testing.T) {
	assets := []models.Asset{
		{Name: "photo.jpg", URL: "https://raw.example.com/assets/uploads/1-photo.jpg"},
		{Name: "door.png", URL: "https://raw.example.com/assets/uploads/2-door.png"},
	}
	res := RenderDocument("Old Mill", testDate, "", "тело", assets, testNow)

	wantBody := "тело\n\n![photo.jpg](https://raw.example.com/assets/uploads/1-photo.jpg)\n\n![door.png](https://raw.example.com/assets/uploads/2-door.png)"
	if res.Body != wantBody {
		t.Errorf("вставки изображений собраны неверно:\n%q\nожидалось:\n%q", res.Body, wantBody)
	}
	if !strings.Contains(res.Document, wantBody) {
		t.Error("документ не содержит тело со вставками")
	}
}

func TestRenderDocumentEmptySlugFallback(t *testing.T) {
	res := RenderDocument("!!!", testDate, "", "тело", nil, testNow)

	want := "_posts/2025-01-02-post-" // дальше — unix-миллисекунды now
	if !strings.HasPrefix(res.Path, want) {
		t.Errorf("нет запасного слага: %q", res.Path)
	}
}
