package rssdk

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// StatusError 表示 resource-server 返回了非 200 的状态码。
// 具体类型（BadRequestError 等）都可以通过 errors.As 取到 *StatusError。
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("resource-server api error: status=%d body=%q", e.StatusCode, e.Body)
}

// BadRequestError 对应 400，一般是查询体不合法。
type BadRequestError struct{ StatusError }

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("resource-server bad request, check query body: status=%d body=%q", e.StatusCode, e.Body)
}

func (e *BadRequestError) Unwrap() error { return &e.StatusError }

// InvalidCredentialsError 对应 401。
type InvalidCredentialsError struct{ StatusError }

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("resource-server invalid credentials: status=%d", e.StatusCode)
}

func (e *InvalidCredentialsError) Unwrap() error { return &e.StatusError }

// RateLimitedError 对应 429。SDK 不做重试，由调用方决定是否退避。
type RateLimitedError struct{ StatusError }

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("resource-server too many requests: status=%d", e.StatusCode)
}

func (e *RateLimitedError) Unwrap() error { return &e.StatusError }

// UnexpectedStatusError 覆盖其余所有非 200 状态码。
type UnexpectedStatusError struct{ StatusError }

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("resource-server unexpected status: status=%d body=%q", e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error { return &e.StatusError }

// checkStatus 把状态码映射为错误，200 返回 nil。
func checkStatus(resp *resty.Response) error {
	se := StatusError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	switch se.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return &BadRequestError{se}
	case http.StatusUnauthorized:
		return &InvalidCredentialsError{se}
	case http.StatusTooManyRequests:
		return &RateLimitedError{se}
	default:
		return &UnexpectedStatusError{se}
	}
}
