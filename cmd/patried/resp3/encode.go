package resp3

import (
	"strconv"
	"unsafe"
)

const (
	bulkStrPrefix = '$'
	arrPrefix     = '*'
	CRLF          = "\r\n"
)

var nullSlice = []byte("_\r\n")

// Encoder accumulates a RESP3 reply in Buf. The buffer is exported so a
// caller can mutate it directly; this exists mainly to attach convenience
// methods for building up a reply one field at a time.
type Encoder struct {
	Buf []byte
}

func (e *Encoder) Reset() { e.Buf = nil }

func (e *Encoder) WriteNull() {
	e.Buf = append(e.Buf, nullSlice...)
}

func (e *Encoder) WriteBulkStr(val string) {
	e.Buf = append(e.Buf, bulkStrPrefix)
	e.Buf = append(e.Buf, strconv.Itoa(len(val))...)
	e.Buf = append(e.Buf, CRLF...)
	e.Buf = append(e.Buf, val...)
	e.Buf = append(e.Buf, CRLF...)
}

// WriteArrHeader writes only the array header; the caller still has to
// write arrLen items after it.
func (e *Encoder) WriteArrHeader(arrLen int) {
	e.Buf = append(e.Buf, arrPrefix)
	e.Buf = append(e.Buf, strconv.Itoa(arrLen)...)
	e.Buf = append(e.Buf, CRLF...)
}

// StringAndReset shares a pointer with the internal buffer to avoid a
// copy; Reset is called so the caller is the sole remaining owner of that
// memory, keeping the returned string's immutability honest.
func (e *Encoder) StringAndReset() (str string) {
	str = unsafe.String(unsafe.SliceData(e.Buf), len(e.Buf))
	e.Reset()
	return str
}
