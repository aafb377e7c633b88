package storage

import (
	"net"
	"net/url"
)

// RewriteLoopbackHost replaces a loopback hostname in a blob URL with the host
// of the current request. Display-time convenience for the local storage
// emulator: stored URLs point at 127.0.0.1, which is wrong for any client that
// isn't the server itself.
func RewriteLoopbackHost(rawURL, requestHost string) string {
	if requestHost == "" {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	host := u.Hostname()
	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil || !ip.IsLoopback() {
			return rawURL
		}
	}

	u.Host = requestHost
	return u.String()
}
