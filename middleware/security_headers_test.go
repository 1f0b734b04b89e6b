package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scriptSrcOf(csp string) string {
	for _, directive := range strings.Split(csp, "; ") {
		if strings.HasPrefix(directive, "script-src") {
			return directive
		}
	}
	return ""
}

func TestBuildCSPScriptSrcFlags(t *testing.T) {
	assert.Equal(t, "script-src 'self'",
		scriptSrcOf(buildCSP(SecurityConfig{})))
	assert.Equal(t, "script-src 'self' 'unsafe-inline' 'unsafe-eval'",
		scriptSrcOf(buildCSP(SecurityConfig{AllowInlineJS: true, AllowEval: true})))
	assert.Equal(t, "script-src 'self' 'unsafe-eval'",
		scriptSrcOf(buildCSP(SecurityConfig{AllowEval: true})))
}

func TestBuildCSPConnectSrcDomains(t *testing.T) {
	csp := buildCSP(SecurityConfig{AllowedDomains: []string{"https://api.tripnest.in"}})
	found := false
	for _, directive := range strings.Split(csp, "; ") {
		if directive == "connect-src 'self' https://api.tripnest.in" {
			found = true
		}
	}
	assert.True(t, found, "connect-src directive missing: %s", csp)
}
