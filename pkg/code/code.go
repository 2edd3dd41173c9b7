package code

import (
	"fmt"
)

// Code is the internal result taxonomy. Success codes carry result data,
// error codes carry a message that becomes the wire `error` string.
type Code struct {
	code   int
	status bool
	Lang   lang
	// result payload
	data     interface{}
	haveData bool
	// extra error detail lines
	details     []string
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code. Registering the same numeric code twice
// is a programming error and panics at init time.
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already registered", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss registers a success code.
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already registered", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Clone returns a copy with no payload, so registered codes stay immutable.
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Msgf(args ...interface{}) string {
	return fmt.Sprintf(e.Lang.GetMessage(), args...)
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	c.data = e.data
	c.haveData = e.haveData
	return c
}
