package cookie

import (
	"net/http"
	"strings"
	"time"

	"library-circulation/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// Every route that reads the token lives under /api.
	cookiePath = "/api"
)

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, accessToken string, expiry time.Duration) {
	write(c, cfg, accessToken, int(expiry.Seconds()))
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	write(c, cfg, "", -1)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func write(c *gin.Context, cfg config.CookieConfig, value string, maxAge int) {
	sameSite := ParseSameSite(cfg.SameSite)
	// Browsers drop SameSite=None cookies that are not Secure.
	secure := cfg.Secure || sameSite == http.SameSiteNoneMode

	c.SetSameSite(sameSite)
	c.SetCookie(AccessTokenCookieName, value, maxAge, cookiePath, cfg.Domain, secure, true)
}

// ParseSameSite falls back to Lax for empty or unknown values.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
