package translator

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

const defaultHTTPTimeout = 20 * time.Second

// newHTTPClient returns the resty client shared by the HTTP backends
func newHTTPClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "triplespace").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
}
