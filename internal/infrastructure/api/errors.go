package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/jhoicas/megastore-web/internal/domain"
)

// adaptError convierte una respuesta no-2xx en *domain.RemoteError.
// El campo message de la API puede ser string, array de strings u objeto campo→mensaje(s).
func adaptError(status int, body []byte) *domain.RemoteError {
	return &domain.RemoteError{
		Kind:    kindFor(status),
		Status:  status,
		Message: extractMessage(body),
	}
}

func kindFor(status int) domain.RemoteErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return domain.KindUnauthorized
	case status == http.StatusForbidden:
		return domain.KindForbidden
	case status == http.StatusNotFound:
		return domain.KindNotFound
	case status >= 400 && status < 500:
		return domain.KindValidation
	default:
		return domain.KindServer
	}
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
}

func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return flatten(eb.Message)
}

// flatten normaliza el valor de message a un único string separado por ", ".
func flatten(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return strings.Join(collect(v), ", ")
}

func collect(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, collect(item)...)
		}
		return out
	case map[string]any:
		// orden estable por nombre de campo
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, collect(t[k])...)
		}
		return out
	}
	return nil
}
