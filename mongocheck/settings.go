// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultPort is assumed for hosts in a mongodb:// connection string that don't carry a port.
const DefaultPort = "27017"

var (
	ErrEmptyURI = errors.New("a mongodb connection string is required")

	errSRVHosts = errors.New("a mongodb+srv connection string requires exactly one host and no port")
)

// Settings is a validated connection string.
type Settings struct {
	uri         string
	scheme      string
	username    string
	password    string
	passwordSet bool
	hosts       []string
	database    string
	signature   string
}

// ParseSettings validates a connection string and computes its canonical signature.
// A mongodb+srv:// string is checked only for its shape.  Its DNS records are resolved
// by the driver when a client is created, so lookup failures surface from Cache.Get.
func ParseSettings(uri string) (Settings, error) {
	if len(strings.TrimSpace(uri)) == 0 {
		return Settings{}, ErrEmptyURI
	}

	var (
		s   Settings
		err error
	)

	if strings.HasPrefix(uri, connstring.SchemeMongoDBSRV+"://") {
		s, err = parseSRV(uri)
	} else {
		s, err = parseStandard(uri)
	}

	if err != nil {
		return Settings{}, fmt.Errorf("invalid mongodb connection string: %w", err)
	}

	s.uri = uri
	s.signature, err = canonicalSignature(s)
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}

func parseStandard(uri string) (Settings, error) {
	conn, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		scheme:      conn.Scheme,
		username:    conn.Username,
		password:    conn.Password,
		passwordSet: conn.PasswordSet,
		hosts:       conn.Hosts,
		database:    conn.Database,
	}, nil
}

func parseSRV(uri string) (Settings, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Settings{}, err
	}

	if len(u.Host) == 0 || strings.Contains(u.Host, ",") || len(u.Port()) > 0 {
		return Settings{}, errSRVHosts
	}

	s := Settings{
		scheme:   connstring.SchemeMongoDBSRV,
		hosts:    []string{u.Hostname()},
		database: strings.TrimPrefix(u.Path, "/"),
	}

	if u.User != nil {
		s.username = u.User.Username()
		s.password, s.passwordSet = u.User.Password()
	}

	return s, nil
}

// URI is the connection string as supplied.
func (s Settings) URI() string {
	return s.uri
}

// Database is the database named in the path of the connection string, if any.
func (s Settings) Database() string {
	return s.database
}

// Hosts are the normalized seed hosts, in sorted order.  Unlike Signature, they carry no credentials.
// For mongodb+srv:// this is the unresolved SRV name.
func (s Settings) Hosts() []string {
	if len(s.hosts) == 0 {
		return nil
	}

	return normalizeHosts(s.scheme, s.hosts)
}

// Signature is the canonical form of these settings.  Connection strings that differ only in
// the order of hosts or options, the case of host names or option names, or an explicit default port
// produce the same signature.  The signature includes credentials and must not be logged.
func (s Settings) Signature() string {
	return s.signature
}

// normalizeHosts lowercases host names and fills in the default port.  Unix socket paths
// are case sensitive and left as they are.
func normalizeHosts(scheme string, hosts []string) []string {
	normalized := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if !strings.HasSuffix(host, ".sock") {
			host = strings.ToLower(host)
			if scheme == connstring.SchemeMongoDB {
				if _, _, err := net.SplitHostPort(host); err != nil {
					host = net.JoinHostPort(strings.Trim(host, "[]"), DefaultPort)
				}
			}
		}

		normalized = append(normalized, host)
	}

	slices.Sort(normalized)
	return normalized
}

func canonicalOptions(uri string) (string, error) {
	i := strings.IndexByte(uri, '?')
	if i < 0 {
		return "", nil
	}

	// the driver accepts ';' as well as '&' between options
	raw, err := url.ParseQuery(strings.ReplaceAll(uri[i+1:], ";", "&"))
	if err != nil {
		return "", fmt.Errorf("invalid mongodb connection options: %w", err)
	}

	// option names are case insensitive
	options := make(map[string][]string, len(raw))
	for name, values := range raw {
		name = strings.ToLower(name)
		options[name] = append(options[name], values...)
	}

	names := maps.Keys(options)
	slices.Sort(names)

	var o strings.Builder
	for _, name := range names {
		for _, value := range options[name] {
			if o.Len() > 0 {
				o.WriteByte('&')
			}

			o.WriteString(url.QueryEscape(name))
			o.WriteByte('=')
			o.WriteString(url.QueryEscape(value))
		}
	}

	return o.String(), nil
}

func canonicalSignature(settings Settings) (string, error) {
	options, err := canonicalOptions(settings.uri)
	if err != nil {
		return "", err
	}

	var s strings.Builder
	s.WriteString(settings.scheme)
	s.WriteString("://")

	if len(settings.username) > 0 || settings.passwordSet {
		s.WriteString(url.UserPassword(settings.username, settings.password).String())
		s.WriteByte('@')
	}

	s.WriteString(strings.Join(settings.Hosts(), ","))
	s.WriteByte('/')
	s.WriteString(settings.database)

	if len(options) > 0 {
		s.WriteByte('?')
		s.WriteString(options)
	}

	return s.String(), nil
}
