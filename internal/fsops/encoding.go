package fsops

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/yanmxa/fsgate/internal/policy"
)

const defaultEncoding = "utf8"

// sniffLen is how much of a file is inspected for NUL bytes.
const sniffLen = 512

type decodeFunc func([]byte) (string, error)

// decoder renders raw file bytes as text in one encoding.
type decoder struct {
	name   string
	decode decodeFunc
}

// lookupDecoder resolves an encoding name, case-insensitively.
func lookupDecoder(name string) (decoder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf8", "utf-8":
		return decoder{defaultEncoding, func(b []byte) (string, error) {
			return strings.ToValidUTF8(string(b), "\uFFFD"), nil
		}}, nil
	case "ascii":
		return decoder{"ascii", func(b []byte) (string, error) {
			out := make([]byte, len(b))
			for i, c := range b {
				out[i] = c & 0x7f
			}
			return string(out), nil
		}}, nil
	case "latin1", "binary":
		return decoder{"latin1", textDecoder(charmap.ISO8859_1)}, nil
	case "utf16le", "utf-16le", "ucs2", "ucs-2":
		return decoder{"utf16le", textDecoder(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))}, nil
	case "base64":
		return decoder{"base64", func(b []byte) (string, error) {
			return base64.StdEncoding.EncodeToString(b), nil
		}}, nil
	case "hex":
		return decoder{"hex", func(b []byte) (string, error) {
			return hex.EncodeToString(b), nil
		}}, nil
	}

	enc, err := htmlindex.Get(key)
	if err != nil {
		return decoder{}, policy.Errorf(policy.KindInvalidEncoding, "Unsupported encoding: %s", name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = key
	}
	return decoder{canonical, textDecoder(enc)}, nil
}

func textDecoder(enc encoding.Encoding) decodeFunc {
	return func(b []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// looksBinary reports a NUL byte in the leading sniff window.
func looksBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
