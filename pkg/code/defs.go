package code

// Shared codes.
var (
	Success = NewSuss(0, lang{en: "success", zh_cn: "成功"})

	ErrorServerInternal  = NewError(100001, lang{en: "internal server error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(100002, lang{en: "invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFoundAction  = NewError(100003, lang{en: "unsupported action", zh_cn: "不支持的操作"})
	ErrorInvalidAPIKey   = NewError(100004, lang{en: "valid api key must be provided", zh_cn: "必须提供有效的 API 密钥"})
	ErrorTooManyRequests = NewError(100005, lang{en: "too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout  = NewError(100006, lang{en: "request timed out", zh_cn: "请求超时"})
	ErrorOriginDenied    = NewError(100007, lang{en: "origin not allowed", zh_cn: "来源不被允许"})
	ErrorMalformedBody   = NewError(100008, lang{en: "request body is not valid json", zh_cn: "请求体不是有效的 JSON"})
)

// Deck codes.
var (
	ErrorDeckNotFound = NewError(200001, lang{en: "deck was not found", zh_cn: "牌组不存在"})
	ErrorDeckExists   = NewError(200002, lang{en: "deck name already exists", zh_cn: "牌组名称已存在"})
	ErrorDeckDefault  = NewError(200003, lang{en: "the default deck cannot be deleted", zh_cn: "默认牌组不能删除"})
)

// Model (note type) codes.
var (
	ErrorModelNotFound    = NewError(200101, lang{en: "model was not found", zh_cn: "笔记模板不存在"})
	ErrorModelExists      = NewError(200102, lang{en: "model name already exists", zh_cn: "笔记模板名称已存在"})
	ErrorModelNoFields    = NewError(200103, lang{en: "model must define at least one field", zh_cn: "笔记模板至少需要一个字段"})
	ErrorModelNoTemplates = NewError(200104, lang{en: "model must define at least one card template", zh_cn: "笔记模板至少需要一个卡片模板"})
)

// Note codes.
var (
	ErrorNoteNotFound  = NewError(200201, lang{en: "note was not found", zh_cn: "笔记不存在"})
	ErrorNoteEmpty     = NewError(200202, lang{en: "cannot create note because it is empty", zh_cn: "笔记内容为空，无法创建"})
	ErrorNoteDuplicate = NewError(200203, lang{en: "cannot create note because it is a duplicate", zh_cn: "笔记重复，无法创建"})
	ErrorNoteFields    = NewError(200204, lang{en: "note fields do not match the model", zh_cn: "笔记字段与模板不匹配"})
)

// Card codes.
var (
	ErrorCardNotFound = NewError(200301, lang{en: "card was not found", zh_cn: "卡片不存在"})
	ErrorCardAnswer   = NewError(200302, lang{en: "invalid card answer ease", zh_cn: "无效的卡片评分"})
)

// Media codes.
var (
	ErrorMediaNotFound = NewError(200401, lang{en: "media file was not found", zh_cn: "媒体文件不存在"})
	ErrorMediaFilename = NewError(200402, lang{en: "invalid media filename", zh_cn: "无效的媒体文件名"})
	ErrorMediaWrite    = NewError(200403, lang{en: "failed to write media file", zh_cn: "媒体文件写入失败"})
	ErrorMediaTooLarge = NewError(200404, lang{en: "media file exceeds the upload size limit", zh_cn: "媒体文件超出上传大小限制"})
)

// Search codes.
var (
	ErrorSearchSyntax = NewError(200501, lang{en: "invalid search query", zh_cn: "无效的检索语句"})
)
