package utils

import (
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

type HTTPClientConfig struct {
	Timeout       time.Duration
	KATimeout     time.Duration
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
	UserAgent     string
	Headers       map[string]string
	// MaxRetries is the number of retries after a failed attempt; zero
	// disables retrying.
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	SetHeader(key, value string)
}

type WorkshopHTTPClient struct {
	client *retryablehttp.Client
	config HTTPClientConfig
}

func NewWorkshopHTTPClient(cfg HTTPClientConfig) *WorkshopHTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultHTTPTimeout
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	if cfg.RetryWaitMin == 0 {
		cfg.RetryWaitMin = DefaultRetryWaitMin
	}
	if cfg.RetryWaitMax < cfg.RetryWaitMin {
		cfg.RetryWaitMax = 10 * cfg.RetryWaitMin
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	transport := &http.Transport{
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			if cfg.ProxyUsername != "" {
				if cfg.ProxyPassword != "" {
					proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
				} else {
					proxyURL.User = url.User(cfg.ProxyUsername)
				}
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.Logger = retryLogger{GetLogger("http")}
	return &WorkshopHTTPClient{
		client: rc,
		config: cfg,
	}
}

func (d *WorkshopHTTPClient) SetHeader(key, value string) {
	d.config.Headers[key] = value
}

func (d *WorkshopHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if d.config.UserAgent != "" {
		req.Header.Set("User-Agent", d.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range d.config.Headers {
		req.Header.Set(k, v)
	}
	rreq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, err
	}
	return d.client.Do(rreq)
}

// retryLogger routes retryablehttp's messages into zerolog at debug level,
// except for errors.
type retryLogger struct {
	log zerolog.Logger
}

func (l retryLogger) Error(msg string, kv ...interface{}) {
	l.log.Error().Str("op", "utils/http-client").Fields(kv).Msg(msg)
}

func (l retryLogger) Warn(msg string, kv ...interface{}) {
	l.log.Debug().Str("op", "utils/http-client").Fields(kv).Msg(msg)
}

func (l retryLogger) Info(msg string, kv ...interface{}) {
	l.log.Debug().Str("op", "utils/http-client").Fields(kv).Msg(msg)
}

func (l retryLogger) Debug(msg string, kv ...interface{}) {
	l.log.Debug().Str("op", "utils/http-client").Fields(kv).Msg(msg)
}
