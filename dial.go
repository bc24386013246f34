// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/pion/dtls/v2"
	"github.com/pion/transport/v3"
	"github.com/pion/transport/v3/stdnet"
)

// DialConfig is used to pass configuration to DialURI().
type DialConfig struct {
	DTLSConfig dtls.Config
	TLSConfig  tls.Config

	Net transport.Net
}

// DialURI connects to the STUN/TURN server and then initializes Client
// on that connection, returning error if any. For secure schemes the
// connection is wrapped in TLS over TCP or DTLS over UDP.
func DialURI(uri *URI, cfg *DialConfig) (*Client, error) { //nolint:cyclop
	var (
		conn Connection
		err  error
	)

	if cfg == nil {
		cfg = &DialConfig{}
	}

	nw := cfg.Net
	if nw == nil {
		nw, err = stdnet.NewNet()
		if err != nil {
			return nil, fmt.Errorf("failed to create net: %w", err)
		}
	}

	addr := net.JoinHostPort(uri.Host, strconv.Itoa(uri.Port))

	switch {
	case uri.Scheme == SchemeTypeSTUN:
		if conn, err = nw.Dial("udp", addr); err != nil {
			return nil, fmt.Errorf("failed to connect to '%s': %w", addr, err)
		}

	case uri.Scheme == SchemeTypeTURN:
		network := "udp" //nolint:goconst
		if uri.Proto == ProtoTypeTCP {
			network = "tcp" //nolint:goconst
		}

		if conn, err = nw.Dial(network, addr); err != nil {
			return nil, fmt.Errorf("failed to connect to '%s': %w", addr, err)
		}

	case uri.Scheme == SchemeTypeTURNS && uri.Proto == ProtoTypeUDP,
		uri.Scheme == SchemeTypeSTUNS && uri.Proto == ProtoTypeUDP:
		dtlsCfg := cfg.DTLSConfig // use a copy to avoid ServerName reuse
		dtlsCfg.ServerName = uri.Host

		var udpConn net.Conn
		if udpConn, err = nw.Dial("udp", addr); err != nil {
			return nil, fmt.Errorf("failed to connect to '%s': %w", addr, err)
		}

		if conn, err = dtls.Client(udpConn, &dtlsCfg); err != nil {
			return nil, fmt.Errorf("failed to connect to '%s': %w", addr, err)
		}

	case uri.Scheme == SchemeTypeTURNS && uri.Proto == ProtoTypeTCP,
		uri.Scheme == SchemeTypeSTUNS && uri.Proto == ProtoTypeTCP:
		tlsCfg := cfg.TLSConfig.Clone() // use a copy to avoid ServerName reuse
		tlsCfg.ServerName = uri.Host

		var tcpConn net.Conn
		if tcpConn, err = nw.Dial("tcp", addr); err != nil {
			return nil, fmt.Errorf("failed to connect to '%s': %w", addr, err)
		}

		conn = tls.Client(tcpConn, tlsCfg)

	default:
		return nil, ErrSchemeType
	}

	return NewClient(ClientOptions{
		Connection: conn,
	})
}
