package sec

import "strings"

type LoginRequestBody struct {
	Module   string `json:"module"`
	PIN      string `json:"pin"`
	UserName string `json:"userName"`
}

type LoginResponseBody struct {
	Success   bool   `json:"success"`
	Module    string `json:"module"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // unix seconds
}

func ExtractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
