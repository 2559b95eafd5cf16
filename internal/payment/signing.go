package payment

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
)

// JazzCashSecureHash signs an outgoing JazzCash request:
// MD5 over merchantID|billReference|amount|returnURL|password.
func JazzCashSecureHash(merchantID, billReference string, amount int64, returnURL, password string) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s", merchantID, billReference, strconv.FormatInt(amount, 10), returnURL, password)
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}

// JazzCashCallbackHash is the hash an inbound notification must carry:
// MD5 over merchantID|billReference|responseCode|transactionID|password.
func JazzCashCallbackHash(merchantID, billReference, responseCode, transactionID, password string) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s", merchantID, billReference, responseCode, transactionID, password)
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}

// VerifyJazzCashCallback recomputes the callback hash and compares it
// in constant time. A mismatch means the payload cannot be trusted.
func VerifyJazzCashCallback(merchantID, password, billReference, responseCode, transactionID, gotHash string) bool {
	want := JazzCashCallbackHash(merchantID, billReference, responseCode, transactionID, password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(gotHash)) == 1
}

// EasypaisaToken builds the bearer token for an Easypaisa init call:
// SHA-256 over merchantID + password + amount + timestamp.
func EasypaisaToken(merchantID, password string, amount int64, timestamp int64) string {
	input := fmt.Sprintf("%s%s%s%d", merchantID, password, strconv.FormatInt(amount, 10), timestamp)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
