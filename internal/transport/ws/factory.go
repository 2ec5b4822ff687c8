package ws

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/lcu-relay/internal/config"
	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
)

type factory struct {
	dialer *websocket.Dialer
	url    string
	header http.Header
}

func NewFactory(cfg config.ClientConfig) factory {
	u := url.URL{Scheme: "wss", Host: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)), Path: "/"}
	header := http.Header{}
	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
	header.Set("Authorization", "Basic "+credentials)
	return factory{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.RequestTimeout,
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}, //nolint:gosec
		},
		url:    u.String(),
		header: header,
	}
}

func (f factory) NewConnection(ctx context.Context) (domain.Connection, error) {
	c, resp, err := f.dialer.DialContext(ctx, f.url, f.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "dial '%s'", f.url)
	}
	return newConn(c), nil
}
