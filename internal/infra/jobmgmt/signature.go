package jobmgmt

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// The remote service recomputes the signature over exactly this pipe-delimited
// string, so field order and delimiter are wire format, not style.
func canonicalString(method, path, accept, authorization, timestamp, body string) string {
	return strings.Join([]string{method, path, accept, authorization, timestamp, body}, "|")
}

func sign(secret, canonical string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
