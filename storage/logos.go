package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrEmptyKey = errors.New("storage: empty object key")

// LogoResolver превращает ключ логотипа команды в URL для клиента.
type LogoResolver interface {
	LogoURL(ctx context.Context, key string) (string, error)
}

type publicURLResolver struct {
	baseURL *url.URL
}

// NewPublicURLResolver строит URL вида <base>/<key> без обращения к хранилищу.
func NewPublicURLResolver(publicBaseURL string) (LogoResolver, error) {
	base, err := parseBaseURL(publicBaseURL)
	if err != nil {
		return nil, err
	}
	return &publicURLResolver{baseURL: base}, nil
}

func (r *publicURLResolver) LogoURL(_ context.Context, key string) (string, error) {
	return joinPublicURL(r.baseURL, key)
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("storage: public base URL is empty")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid public base URL %q: %w", raw, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("storage: public base URL %q must be absolute", raw)
	}
	// ResolveReference отбрасывает последний сегмент без слеша
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base, nil
}

func joinPublicURL(base *url.URL, key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	ref, err := url.Parse(key)
	if err != nil {
		return "", fmt.Errorf("storage: invalid object key %q: %w", key, err)
	}
	return base.ResolveReference(ref).String(), nil
}
