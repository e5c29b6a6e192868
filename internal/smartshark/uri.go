package smartshark

import (
	"net/url"
	"strconv"
	"strings"
)

// Credentials describes how to reach a SmartSHARK MongoDB instance.
type Credentials struct {
	User                   string
	Password               string
	Hostname               string
	Port                   int
	AuthenticationDatabase string
	SSLEnabled             bool
}

// BuildURI renders credentials as a MongoDB connection string in the same
// shape the SmartSHARK tooling produces.
func BuildURI(c Credentials) string {
	var b strings.Builder
	b.WriteString("mongodb://")

	if c.User != "" {
		b.WriteString(url.QueryEscape(c.User))
		if c.Password != "" {
			b.WriteString(":")
			b.WriteString(url.QueryEscape(c.Password))
		}
		b.WriteString("@")
	}

	b.WriteString(c.Hostname)
	b.WriteString(":")
	b.WriteString(strconv.Itoa(c.Port))

	switch {
	case c.AuthenticationDatabase != "":
		b.WriteString("/?authSource=")
		b.WriteString(c.AuthenticationDatabase)
		if c.SSLEnabled {
			b.WriteString("&ssl=true")
		}
	case c.SSLEnabled:
		b.WriteString("/?ssl=true")
	}

	return b.String()
}
