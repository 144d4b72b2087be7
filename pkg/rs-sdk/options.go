package rssdk

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// 以下函数只负责把语义化的查询意图转成 QueryOptions，不发请求。

func LatestOptions() QueryOptions {
	return QueryOptions{KeyOptions: OptionLatest}
}

func StatusOptions() QueryOptions {
	return QueryOptions{KeyOptions: OptionStatus}
}

// TimeOptions 生成 TRelation 查询，during 时 time 形如 "start/end"。
func TimeOptions(rel TimeRelation, time string) QueryOptions {
	return QueryOptions{
		KeyTRelation: string(rel),
		KeyTime:      time,
	}
}

func DuringOptions(start, end string) QueryOptions {
	return TimeOptions(TimeRelationDuring, start+"/"+end)
}

func BeforeOptions(time string) QueryOptions {
	return TimeOptions(TimeRelationBefore, time)
}

func AfterOptions(time string) QueryOptions {
	return TimeOptions(TimeRelationAfter, time)
}

// AroundOptions 生成以 point 为圆心、radius（米）为半径的地理查询。
func AroundOptions(point Point, radius float64) QueryOptions {
	return QueryOptions{
		KeyLat:    FormatNumber(point.Lat),
		KeyLon:    FormatNumber(point.Lon),
		KeyRadius: FormatNumber(radius),
	}
}

// AttributeOptions 生成属性比较查询，resource-server 只在 latest 上做比较。
func AttributeOptions(attribute string, op ComparisonOperator, value string) QueryOptions {
	return QueryOptions{
		KeyAttributeName:      attribute,
		KeyAttributeValue:     value,
		KeyComparisonOperator: string(op),
		KeyOptions:            OptionLatest,
	}
}

func ValuesLikeOptions(attribute, value string) QueryOptions {
	return AttributeOptions(attribute, ComparisonLike, value)
}

func ValuesGreaterOptions(attribute string, minVal float64) QueryOptions {
	return AttributeOptions(attribute, ComparisonGreaterOrEqual, FormatNumber(minVal))
}

func ValuesLesserOptions(attribute string, maxVal float64) QueryOptions {
	return AttributeOptions(attribute, ComparisonLesserOrEqual, FormatNumber(maxVal))
}

func ValuesBetweenOptions(attribute string, minVal, maxVal float64) QueryOptions {
	return AttributeOptions(attribute, ComparisonBetween, FormatNumber(minVal)+","+FormatNumber(maxVal))
}

// FormatNumber 输出最短的十进制表示：10 -> "10"，12.9 -> "12.9"。
func FormatNumber(v float64) string {
	// decimal 不接受 NaN/Inf
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

// BuildRequest 合并 options、id、token：先放 options，再写 id，token 非空时最后写入。
func BuildRequest(id string, opts QueryOptions, token string) QueryRequest {
	req := make(QueryRequest, len(opts)+2)
	for k, v := range opts {
		req[k] = v
	}
	req[KeyID] = id
	if token != "" {
		req[KeyToken] = token
	}
	return req
}
