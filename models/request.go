package models

import "strings"

// Request carries the already-parsed attributes of one observed network
// request. Capture and parsing happen outside this layer; evaluation only
// reads these fields.
type Request struct {
	// URL is the full requested URL as observed on the wire.
	// May be empty when the interceptor supplies only the parts.
	URL string `json:"url"`

	// Protocol is the scheme of the request ("http", "https", ...).
	Protocol string `json:"protocol"`

	// Host is the request authority without port.
	Host string `json:"host"`

	// Path is the request path including the leading slash.
	Path string `json:"path"`

	// DeviceID identifies the originating device for audit purposes.
	DeviceID int64 `json:"device_id"`
}

// FullURL returns the URL if present, otherwise reconstructs it from the
// protocol, host, and path parts.
func (r Request) FullURL() string {
	if r.URL != "" {
		return r.URL
	}

	var b strings.Builder
	if r.Protocol != "" {
		b.WriteString(r.Protocol)
		b.WriteString("://")
	}
	b.WriteString(r.Host)
	b.WriteString(r.Path)
	return b.String()
}
