package rssdk

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

var ErrEmptyStatusResponse = errors.New("resource-server returned no status record")

// GetData 是所有查询的基础：合并 id/options/token，POST 到 baseURL/search，并按状态码解释响应。
// token 为空字符串时请求体不带 token。
func (c *Client) GetData(ctx context.Context, id string, opts QueryOptions, token string) ([]Record, error) {
	req := BuildRequest(id, opts, token)
	resp, err := c.Search(ctx, c.baseURL, req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		c.http.log.WithField("id", id).WithError(err).Debug("resource-server query rejected")
		return nil, err
	}

	var out []Record
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errors.Wrap(err, "decode resource-server response")
	}
	return out, nil
}

func (c *Client) GetLatestData(ctx context.Context, id, token string) ([]Record, error) {
	return c.GetData(ctx, id, LatestOptions(), token)
}

// GetDataDuring 查询 [start, end] 时间段内的数据，时间格式由 resource-server 定义（通常为 ISO8601）。
func (c *Client) GetDataDuring(ctx context.Context, id, start, end, token string) ([]Record, error) {
	return c.GetData(ctx, id, DuringOptions(start, end), token)
}

func (c *Client) GetDataBefore(ctx context.Context, id, time, token string) ([]Record, error) {
	return c.GetData(ctx, id, BeforeOptions(time), token)
}

func (c *Client) GetDataAfter(ctx context.Context, id, time, token string) ([]Record, error) {
	return c.GetData(ctx, id, AfterOptions(time), token)
}

// GetDataAround radius 单位为米。
func (c *Client) GetDataAround(ctx context.Context, id string, point Point, radius float64, token string) ([]Record, error) {
	return c.GetData(ctx, id, AroundOptions(point, radius), token)
}

func (c *Client) GetDataValuesLike(ctx context.Context, id, attribute, value, token string) ([]Record, error) {
	return c.GetData(ctx, id, ValuesLikeOptions(attribute, value), token)
}

func (c *Client) GetDataValuesGreater(ctx context.Context, id, attribute string, minVal float64, token string) ([]Record, error) {
	return c.GetData(ctx, id, ValuesGreaterOptions(attribute, minVal), token)
}

func (c *Client) GetDataValuesLesser(ctx context.Context, id, attribute string, maxVal float64, token string) ([]Record, error) {
	return c.GetData(ctx, id, ValuesLesserOptions(attribute, maxVal), token)
}

func (c *Client) GetDataValuesBetween(ctx context.Context, id, attribute string, minVal, maxVal float64, token string) ([]Record, error) {
	return c.GetData(ctx, id, ValuesBetweenOptions(attribute, minVal, maxVal), token)
}

// GetStatus 只有首条记录的 status 为 "down" 时返回 false，字段缺失也视为可用。
func (c *Client) GetStatus(ctx context.Context, id, token string) (bool, error) {
	records, err := c.GetData(ctx, id, StatusOptions(), token)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, errors.Wrapf(ErrEmptyStatusResponse, "id=%s", id)
	}
	status, _ := records[0]["status"].(string)
	return status != StatusDown, nil
}
