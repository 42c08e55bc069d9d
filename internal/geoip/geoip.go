// Package geoip resolves a client IP to a country name through the free
// ip-api.com endpoint. Lookups are best effort: any failure returns an
// empty country and must never block the calling flow.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

var privateRangePattern = regexp.MustCompile(`^172\.(1[6-9]|2\d|3[01])\.`)

// Resolver queries ip-api.com.
type Resolver struct {
	baseURL string
	http    *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		baseURL: "http://ip-api.com/json",
		http:    &http.Client{Timeout: lookupTimeout},
	}
}

// isPrivateIP filters loopback and RFC1918 addresses that the upstream
// cannot resolve anyway.
func isPrivateIP(ip string) bool {
	return ip == "127.0.0.1" ||
		ip == "::1" ||
		ip == "::ffff:127.0.0.1" ||
		strings.HasPrefix(ip, "10.") ||
		strings.HasPrefix(ip, "192.168.") ||
		privateRangePattern.MatchString(ip)
}

// CountryForIP returns the country name for a public IP, or "" when the
// address is private or the lookup fails.
func (r *Resolver) CountryForIP(ctx context.Context, ip string) string {
	if ip == "" || isPrivateIP(ip) {
		return ""
	}

	url := fmt.Sprintf("%s/%s?fields=status,country", r.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var data struct {
		Status  string `json:"status"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ""
	}
	if data.Status != "success" {
		return ""
	}
	return data.Country
}
