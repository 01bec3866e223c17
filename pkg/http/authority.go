package http

import (
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"
)

// HostKind classifies the host of an Authority.
type HostKind uint8

const (
	HostName HostKind = iota
	HostIPv4
	HostIPv6
)

func (k HostKind) String() string {
	switch k {
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	default:
		return "name"
	}
}

// Authority is "[userinfo@]host[:port]". It is both the authority-form
// request target used by CONNECT and the authority part of an Absolute URI.
type Authority struct {
	userinfo    string
	hasUserinfo bool
	host        string
	kind        HostKind
	port        uint16
	hasPort     bool
}

// ParseAuthority parses an authority-form target, "host:port", as sent
// with CONNECT. The port is required and userinfo is not allowed.
func ParseAuthority(s string) (Authority, error) {
	if s == "" {
		return Authority{}, errtrace.Wrap(newEmpty("empty authority"))
	}
	a, err := parseAuthority(s, 0, false)
	if err != nil {
		return Authority{}, errtrace.Wrap(err)
	}
	if !a.hasPort {
		return Authority{}, errtrace.Wrap(newMalformed(len(s), "missing port in authority-form target"))
	}
	return a, nil
}

// MustParseAuthority is like ParseAuthority but panics on error.
func MustParseAuthority(s string) Authority {
	a, err := ParseAuthority(s)
	if err != nil {
		panic(err)
	}
	return a
}

func parseAuthority(s string, offset int, allowUserinfo bool) (Authority, error) {
	var a Authority
	hostport, hostOffset := s, offset
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		if !allowUserinfo {
			return Authority{}, newMalformed(offset, "userinfo is not allowed in authority-form")
		}
		if err := validateEscaped(s[:i], classUserinfo, offset, "userinfo"); err != nil {
			return Authority{}, err
		}
		a.userinfo, a.hasUserinfo = s[:i], true
		hostport, hostOffset = s[i+1:], offset+i+1
	}

	host, port := hostport, ""
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return Authority{}, newMalformed(hostOffset, "missing ']' in IP literal")
		}
		host = hostport[:end+1]
		rest := hostport[end+1:]
		if rest != "" {
			if rest[0] != ':' {
				return Authority{}, newMalformed(hostOffset+end+1, "unexpected %q after IP literal", rest)
			}
			port = rest[1:]
		}
	} else if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
		host, port = hostport[:i], hostport[i+1:]
	}

	if err := a.setHost(host, hostOffset); err != nil {
		return Authority{}, err
	}
	if port != "" {
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return Authority{}, newMalformed(hostOffset+len(host)+1, "invalid port %q", port)
		}
		a.port, a.hasPort = uint16(n), true
	}
	return a, nil
}

func (a *Authority) setHost(host string, offset int) error {
	if host == "" {
		return newMalformed(offset, "empty host")
	}

	if host[0] == '[' {
		ip, err := netip.ParseAddr(host[1 : len(host)-1])
		if err != nil || !ip.Is6() || ip.Zone() != "" {
			return newMalformed(offset, "invalid IPv6 literal %q", host)
		}
		a.host, a.kind = ip.String(), HostIPv6
		return nil
	}

	if strings.Trim(host, "0123456789.") == "" && strings.Contains(host, ".") {
		ip, err := netip.ParseAddr(host)
		if err != nil || !ip.Is4() {
			return newMalformed(offset, "invalid IPv4 address %q", host)
		}
		a.host, a.kind = ip.String(), HostIPv4
		return nil
	}

	if err := validateEscaped(host, classUnreserved|classSubDelim, offset, "host"); err != nil {
		return err
	}
	// Plain DNS names also have to satisfy label length rules.
	if strings.Trim(host, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~") == "" {
		if _, ok := dns.IsDomainName(host); !ok {
			return newMalformed(offset, "invalid host name %q", host)
		}
	}
	a.host, a.kind = strings.ToLower(host), HostName
	return nil
}

// Host returns the lower-cased host. IPv6 literals are returned without
// brackets.
func (a Authority) Host() string { return a.host }

// HostKind reports whether the host is a name or an IP literal.
func (a Authority) HostKind() HostKind { return a.kind }

// Addr returns the host as an IP address when it is an IP literal.
func (a Authority) Addr() (netip.Addr, bool) {
	if a.kind == HostName {
		return netip.Addr{}, false
	}
	ip, err := netip.ParseAddr(a.host)
	return ip, err == nil
}

// Port returns the port, if one was given.
func (a Authority) Port() (uint16, bool) { return a.port, a.hasPort }

// UserInfo returns the userinfo as written, if present.
func (a Authority) UserInfo() (string, bool) { return a.userinfo, a.hasUserinfo }

// Form implements URI.
func (Authority) Form() Form { return FormAuthority }

func (Authority) isURI() {}

// String renders the authority.
func (a Authority) String() string {
	var b strings.Builder
	if a.hasUserinfo {
		b.WriteString(a.userinfo)
		b.WriteByte('@')
	}
	if a.kind == HostIPv6 {
		b.WriteByte('[')
		b.WriteString(a.host)
		b.WriteByte(']')
	} else {
		b.WriteString(a.host)
	}
	if a.hasPort {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(a.port), 10))
	}
	return b.String()
}

// Equal implements URI.
func (a Authority) Equal(u URI) bool {
	o, ok := u.(Authority)
	return ok && a == o
}
