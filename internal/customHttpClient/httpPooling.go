package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/StudyRAG/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var (
	once   sync.Once
	client *http.Client
)

// GetClient returns the pooled client shared by the embedding, llm and speech SDKs.
func GetClient() *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: customTransport,
			Timeout:   config.ProviderHTTPTimeout,
		}
	})
	return client
}
