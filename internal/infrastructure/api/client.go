// Package api implementa los puertos de internal/domain/repository contra la API REST de Megastore.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/pkg/config"
	"github.com/jhoicas/megastore-web/pkg/logger"
)

// Tamaño máximo de respuesta que se lee de la API.
const maxResponseBytes = 4 << 20

// TokenSource devuelve el bearer token de la sesión del request ("" si no hay sesión).
type TokenSource func(ctx context.Context) string

type requestIDKey struct{}

// WithRequestID propaga el id del request entrante a las llamadas salientes.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Client cliente HTTP único hacia la API: base URL, bearer token, JSON y adaptación de errores.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	log        *logger.Logger
}

// NewClient construye el cliente. Con Timeout 0 se usa el comportamiento por defecto de net/http.
func NewClient(cfg config.APIConfig, token TokenSource, log *logger.Logger) *Client {
	if token == nil {
		token = func(context.Context) string { return "" }
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		token:      token,
		log:        log.Named("api"),
	}
}

// Do ejecuta method sobre path. body (si no es nil) se serializa a JSON; out (si no es nil)
// recibe el cuerpo decodificado. Todo fallo se devuelve como *domain.RemoteError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reader, contentType, out)
}

// FilePart archivo de un cuerpo multipart.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// DoMultipart como Do, pero envía fields (en el orden dado) y file como multipart/form-data.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields [][2]string, file *FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("api: armar multipart: %w", err)
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(file.Field), escapeQuotes(file.Filename)))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("api: armar multipart: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("api: armar multipart: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("api: armar multipart: %w", err)
	}
	return c.send(ctx, method, path, nil, &buf, w.FormDataContentType(), out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

func (c *Client) send(ctx context.Context, method, path string, query url.Values, reader io.Reader, contentType string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rid := requestID(ctx)
	req.Header.Set("X-Request-ID", rid)
	if tok := c.token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", rid).Str("method", method).Str("path", path).Msg("llamada a la API fallida")
		if ctx.Err() != nil {
			return &domain.RemoteError{Kind: domain.KindNetwork, Err: ctx.Err()}
		}
		return &domain.RemoteError{Kind: domain.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.RemoteError{Kind: domain.KindNetwork, Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("request_id", rid).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := adaptError(resp.StatusCode, raw)
		c.log.Warn().Str("request_id", rid).Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("message", rerr.Message).Msg("la API rechazó la solicitud")
		return rerr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.RemoteError{Kind: domain.KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// IsRemote indica si err proviene de la API (útil para logs).
func IsRemote(err error) bool {
	var re *domain.RemoteError
	return errors.As(err, &re)
}
