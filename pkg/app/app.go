package app

import (
	"net/http"

	"github.com/ankibridge/ankibridge-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// APIVersion is the highest wire protocol version this server speaks.
const APIVersion = 6

// LegacyEnvelopeVersion is the first protocol version that uses the
// result/error envelope. Older clients receive the bare result.
const LegacyEnvelopeVersion = 5

// VersionInfo server build information.
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// CheckVersionInfo release check state, refreshed by the background task.
type CheckVersionInfo struct {
	VersionIsNew   bool   `json:"versionIsNew"`
	VersionNewName string `json:"versionNewName"`
	VersionNewLink string `json:"versionNewLink"`
}

// Res is the wire envelope: every protocol v5+ reply is {result, error}.
type Res struct {
	Result interface{} `json:"result"`
	Error  interface{} `json:"error"`
}

// Response renders the connect envelope onto a gin context.
type Response struct {
	Ctx *gin.Context
	// Version is the protocol version the client asked for.
	Version int
}

// ProtoVersionKey gin context key holding the negotiated protocol version.
const ProtoVersionKey = "proto_version"

func NewResponse(ctx *gin.Context) *Response {
	version := APIVersion
	if v, ok := ctx.Get(ProtoVersionKey); ok {
		if vi, ok := v.(int); ok && vi > 0 {
			version = vi
		}
	}
	return &Response{Ctx: ctx, Version: version}
}

// ToResponse writes a success or error code as the wire envelope.
func (r *Response) ToResponse(codeObj *code.Code) {
	if codeObj.Status() {
		r.ToResult(codeObj.Data())
		return
	}
	msg := codeObj.Msg()
	if codeObj.HaveDetails() && len(codeObj.Details()) > 0 {
		msg = msg + ": " + codeObj.Details()[0]
	}
	r.ToError(msg)
}

// ToResult writes a successful result. Protocol versions below 5 receive the
// bare result value for compatibility with old clients.
func (r *Response) ToResult(result interface{}) {
	if r.Version < LegacyEnvelopeVersion {
		r.send(http.StatusOK, result)
		return
	}
	r.send(http.StatusOK, Res{Result: result, Error: nil})
}

// ToError writes an error string. The envelope is always used for errors so
// the client can tell them apart from results.
func (r *Response) ToError(message string) {
	r.send(http.StatusOK, Res{Result: nil, Error: message})
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.Set("status_code", statusCode)
	body, err := sonic.Marshal(content)
	if err != nil {
		r.Ctx.JSON(statusCode, content)
		return
	}
	r.Ctx.Data(statusCode, "application/json; charset=utf-8", body)
}

// GetRequestIP gets the request IP.
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// GetAccessHost reconstructs the externally visible host for the request.
func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http" + "://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}
