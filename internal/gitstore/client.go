package gitstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"urbexblog/internal/apperr"
)

const defaultAPIBase = "https://api.github.com"

// Client — минимальный клиент contents API GitHub для коммита файлов в
// канонический репозиторий блога. Хранилище оптимистично-конкурентное:
// обновление существующего пути GitHub принимает только с текущим SHA
// (маркером версии), а создание нового — только без него, поэтому перед
// каждой записью выполняется запрос текущего маркера.
type Client struct {
	apiBase string
	rawBase string

	token string
	owner string
	repo  string

	httpClient *http.Client

	// branch резолвится лениво: если не задана в конфиге, берём
	// default branch репозитория и кешируем.
	mu     sync.Mutex
	branch string
}

func NewClient(token, owner, repo, branch string) *Client {
	return &Client{
		apiBase: defaultAPIBase,
		rawBase: "https://raw.githubusercontent.com",
		token:   token,
		owner:   owner,
		repo:    repo,
		branch:  branch,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured — заданы ли учётные данные репозитория. Ненастроенный клиент
// переводит пайплайн публикации в локальный режим.
func (c *Client) Configured() bool {
	return c != nil && c.token != "" && c.owner != "" && c.repo != ""
}

// CommitResult — результат успешного коммита файла.
type CommitResult struct {
	Path   string
	SHA    string
	RawURL string
}

type repoInfo struct {
	DefaultBranch string `json:"default_branch"`
}

type contentInfo struct {
	SHA string `json:"sha"`
}

type putContentRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type putContentResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// PutFile коммитит файл по пути path: сперва запрашивает текущий маркер
// версии, затем создаёт либо обновляет файл. Каждый успешный вызов даёт
// ровно один новый коммит в канонической истории.
func (c *Client) PutFile(ctx context.Context, path string, content []byte, message string) (*CommitResult, error) {
	if !c.Configured() {
		return nil, apperr.ErrRemoteUnconfigured
	}

	branch, err := c.ensureBranch(ctx)
	if err != nil {
		return nil, err
	}

	sha, exists, err := c.fetchSHA(ctx, path, branch)
	if err != nil {
		return nil, err
	}

	req := putContentRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  branch,
	}
	if exists {
		req.SHA = sha
	}

	var resp putContentResponse
	status, err := c.do(ctx, http.MethodPut, c.contentsURL(path, ""), req, &resp)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		return &CommitResult{Path: path, SHA: resp.Content.SHA, RawURL: c.RawURL(path)}, nil
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		// Устаревший или пропавший маркер: не ретраим, чтобы не затереть
		// параллельную правку в репозитории.
		return nil, fmt.Errorf("%w: commit %q отклонён (status %d)", apperr.ErrRemoteConflict, path, status)
	default:
		return nil, fmt.Errorf("%w: commit %q (status %d)", apperr.ErrRemoteUnavailable, path, status)
	}
}

// RawURL возвращает публичный raw-адрес файла в репозитории.
func (c *Client) RawURL(path string) string {
	branch := c.branch
	if branch == "" {
		branch = "main"
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase, c.owner, c.repo, branch, strings.Join(segments, "/"))
}

func (c *Client) ensureBranch(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.branch != "" {
		return c.branch, nil
	}

	var info repoInfo
	status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/repos/%s/%s", c.apiBase, c.owner, c.repo), nil, &info)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK || info.DefaultBranch == "" {
		return "", fmt.Errorf("%w: не удалось определить default branch (status %d)", apperr.ErrRemoteUnavailable, status)
	}
	c.branch = info.DefaultBranch
	return c.branch, nil
}

// fetchSHA возвращает текущий маркер версии файла. «Файла нет» — ожидаемый
// исход, а не ошибка: он переключает запись в режим создания.
func (c *Client) fetchSHA(ctx context.Context, path, branch string) (string, bool, error) {
	var info contentInfo
	status, err := c.do(ctx, http.MethodGet, c.contentsURL(path, branch), nil, &info)
	if err != nil {
		return "", false, err
	}
	switch status {
	case http.StatusOK:
		return info.SHA, true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("%w: запрос маркера версии %q (status %d)", apperr.ErrRemoteUnavailable, path, status)
	}
}

func (c *Client) contentsURL(path, ref string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, c.owner, c.repo, strings.Join(segments, "/"))
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}
	return u
}

// do выполняет запрос и декодирует тело ответа в out (если указан).
// Возвращает статус ответа; сетевые сбои и таймауты — ErrRemoteUnavailable.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return resp.StatusCode, fmt.Errorf("%w: разбор ответа: %v", apperr.ErrRemoteUnavailable, err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}
