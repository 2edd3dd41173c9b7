package util

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
)

// EncodeMD5 returns the 32 hex character MD5 digest of str.
func EncodeMD5(str string) string {
	h := md5.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeSHA1 returns the 40 hex character SHA1 digest of str.
func EncodeSHA1(str string) string {
	h := sha1.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeSHA1Bytes returns the SHA1 digest of raw bytes.
func EncodeSHA1Bytes(b []byte) string {
	h := sha1.New()
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes markup before checksumming field text, so formatting
// changes do not break duplicate detection.
func StripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}

// FieldChecksum returns the duplicate-detection checksum of a note's first
// field: SHA1 over the markup-stripped text.
func FieldChecksum(field string) string {
	return EncodeSHA1(StripHTML(field))
}
