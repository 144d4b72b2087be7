package rssdk

// 说明：
// - resource-server 的查询参数全部是字符串（数值也要先转成字符串），所以 QueryOptions 用 map[string]string。
// - 返回体不做 schema 约束，每条记录就是一个 JSON object。

// QueryOptions 描述一次查询的形态（latest / 时间关系 / 地理半径 / 属性比较 / status），每次调用只有一种形态。
type QueryOptions map[string]string

// QueryRequest 是最终 POST 到 {baseURL}/search 的请求体。
type QueryRequest map[string]string

// Record 是 resource-server 返回的单条数据。
type Record map[string]any

// 请求体中的 key
const (
	KeyID                 = "id"
	KeyToken              = "token"
	KeyOptions            = "options"
	KeyTRelation          = "TRelation"
	KeyTime               = "time"
	KeyLat                = "lat"
	KeyLon                = "lon"
	KeyRadius             = "radius"
	KeyAttributeName      = "attribute-name"
	KeyAttributeValue     = "attribute-value"
	KeyComparisonOperator = "comparison-operator"
)

const (
	OptionLatest = "latest"
	OptionStatus = "status"
)

// TimeRelation 对应查询语法里的 TRelation。
type TimeRelation string

const (
	TimeRelationBefore TimeRelation = "before"
	TimeRelationAfter  TimeRelation = "after"
	TimeRelationDuring TimeRelation = "during"
)

type ComparisonOperator string

const (
	ComparisonLike           ComparisonOperator = "propertyislike"
	ComparisonGreaterOrEqual ComparisonOperator = "propertyisgreaterthanorequalto"
	ComparisonLesserOrEqual  ComparisonOperator = "propertyislessthanorequalto"
	ComparisonBetween        ComparisonOperator = "propertyisbetween"
)

// Point 是地理坐标（十进制度）。
type Point struct {
	Lat float64
	Lon float64
}

const StatusDown = "down"
