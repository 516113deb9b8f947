// internal/application/usecase/common_usecase.go
package usecase

import "strings"

// maskUID keeps provider uids out of logs (tail only).
func maskUID(uid string) string {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return ""
	}
	if len(uid) <= 6 {
		return "***"
	}
	return "***" + uid[len(uid)-6:]
}
