package icmpclient

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Status names an echo outcome. Names follow the conventional IP status
// vocabulary so frontends can show them verbatim.
type Status string

const (
	StatusSuccess                        Status = "Success"
	StatusTimedOut                       Status = "TimedOut"
	StatusDestinationNetworkUnreachable  Status = "DestinationNetworkUnreachable"
	StatusDestinationHostUnreachable     Status = "DestinationHostUnreachable"
	StatusDestinationProtocolUnreachable Status = "DestinationProtocolUnreachable"
	StatusDestinationPortUnreachable     Status = "DestinationPortUnreachable"
	StatusDestinationProhibited          Status = "DestinationProhibited"
	StatusDestinationUnreachable         Status = "DestinationUnreachable"
	StatusTtlExpired                     Status = "TtlExpired"
	StatusPacketTooBig                   Status = "PacketTooBig"
	StatusParameterProblem               Status = "ParameterProblem"
)

const (
	protocolICMP     = 1
	protocolIPv6ICMP = 58
)

type Reply struct {
	Status Status
	RTT    time.Duration
	Addr   net.IP
}

type resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type Adapter struct {
	resolver   resolver
	privileged bool
	id         int
	seq        atomic.Uint32
}

// NewAdapter returns an adapter that opens one socket per echo. With
// privileged false it tries unprivileged datagram sockets first and falls
// back to raw sockets.
func NewAdapter(privileged bool) *Adapter {
	return &Adapter{
		resolver:   net.DefaultResolver,
		privileged: privileged,
		id:         os.Getpid() & 0xffff,
	}
}

// Echo resolves host and sends a single echo request, waiting at most
// timeout for a reply. A missing reply is a TimedOut reply, not an error;
// errors are reserved for resolution and socket failures.
func (a *Adapter) Echo(ctx context.Context, host string, timeout time.Duration) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addrs, err := a.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return Reply{}, err
	}
	ip := pickAddr(addrs)
	if ip == nil {
		return Reply{}, fmt.Errorf("no address found for host %s", host)
	}

	v6 := ip.To4() == nil
	conn, datagram, err := a.listen(v6)
	if err != nil {
		return Reply{}, err
	}
	defer conn.Close()

	seq := int(a.seq.Add(1) & 0xffff)
	token := uuid.New()
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{ID: a.id, Seq: seq, Data: token[:]},
	}
	if v6 {
		msg.Type = ipv6.ICMPTypeEchoRequest
	}
	b, err := msg.Marshal(nil)
	if err != nil {
		return Reply{}, fmt.Errorf("marshal echo request: %w", err)
	}

	var dst net.Addr = &net.IPAddr{IP: ip}
	if datagram {
		dst = &net.UDPAddr{IP: ip}
	}

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return Reply{}, err
	}

	start := time.Now()
	if _, err := conn.WriteTo(b, dst); err != nil {
		return Reply{}, fmt.Errorf("send echo request: %w", err)
	}

	proto := protocolICMP
	if v6 {
		proto = protocolIPv6ICMP
	}
	buf := make([]byte, 1500)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return Reply{Status: StatusTimedOut, Addr: ip}, nil
			}
			return Reply{}, fmt.Errorf("read echo reply: %w", err)
		}
		rm, err := icmp.ParseMessage(proto, buf[:n])
		if err != nil {
			continue
		}
		status, ok := classify(rm, seq, token[:])
		if !ok {
			continue
		}
		reply := Reply{Status: status, Addr: ip}
		if status == StatusSuccess {
			reply.RTT = time.Since(start)
		}
		return reply, nil
	}
}

func (a *Adapter) listen(v6 bool) (*icmp.PacketConn, bool, error) {
	rawNet, udpNet, addr := "ip4:icmp", "udp4", "0.0.0.0"
	if v6 {
		rawNet, udpNet, addr = "ip6:ipv6-icmp", "udp6", "::"
	}
	if !a.privileged {
		if conn, err := icmp.ListenPacket(udpNet, addr); err == nil {
			return conn, true, nil
		}
	}
	conn, err := icmp.ListenPacket(rawNet, addr)
	if err != nil {
		return nil, false, fmt.Errorf("open icmp socket: %w", err)
	}
	return conn, false, nil
}

// pickAddr prefers IPv4.
func pickAddr(addrs []net.IPAddr) net.IP {
	var v6 net.IP
	for _, a := range addrs {
		if a.IP.To4() != nil {
			return a.IP
		}
		if v6 == nil {
			v6 = a.IP
		}
	}
	return v6
}

// classify reports the status carried by m and whether m answers the echo
// with the given sequence number. Datagram sockets rewrite the echo ID, so
// replies are matched on sequence and payload instead.
func classify(m *icmp.Message, seq int, token []byte) (Status, bool) {
	switch m.Type {
	case ipv4.ICMPTypeEchoReply, ipv6.ICMPTypeEchoReply:
		echo, ok := m.Body.(*icmp.Echo)
		if !ok || echo.Seq != seq || !bytes.Equal(echo.Data, token) {
			return "", false
		}
		return StatusSuccess, true

	case ipv4.ICMPTypeDestinationUnreachable:
		body, ok := m.Body.(*icmp.DstUnreach)
		if !ok || !quotesEcho(body.Data, false, seq) {
			return "", false
		}
		switch m.Code {
		case 0:
			return StatusDestinationNetworkUnreachable, true
		case 1:
			return StatusDestinationHostUnreachable, true
		case 2:
			return StatusDestinationProtocolUnreachable, true
		case 3:
			return StatusDestinationPortUnreachable, true
		case 9, 10, 13:
			return StatusDestinationProhibited, true
		}
		return StatusDestinationUnreachable, true

	case ipv6.ICMPTypeDestinationUnreachable:
		body, ok := m.Body.(*icmp.DstUnreach)
		if !ok || !quotesEcho(body.Data, true, seq) {
			return "", false
		}
		switch m.Code {
		case 0:
			return StatusDestinationNetworkUnreachable, true
		case 1:
			return StatusDestinationProhibited, true
		case 3:
			return StatusDestinationHostUnreachable, true
		case 4:
			return StatusDestinationPortUnreachable, true
		}
		return StatusDestinationUnreachable, true

	case ipv4.ICMPTypeTimeExceeded, ipv6.ICMPTypeTimeExceeded:
		body, ok := m.Body.(*icmp.TimeExceeded)
		if !ok || !quotesEcho(body.Data, m.Type == ipv6.ICMPTypeTimeExceeded, seq) {
			return "", false
		}
		return StatusTtlExpired, true

	case ipv4.ICMPTypeParameterProblem, ipv6.ICMPTypeParameterProblem:
		body, ok := m.Body.(*icmp.ParamProb)
		if !ok || !quotesEcho(body.Data, m.Type == ipv6.ICMPTypeParameterProblem, seq) {
			return "", false
		}
		return StatusParameterProblem, true

	case ipv6.ICMPTypePacketTooBig:
		body, ok := m.Body.(*icmp.PacketTooBig)
		if !ok || !quotesEcho(body.Data, true, seq) {
			return "", false
		}
		return StatusPacketTooBig, true
	}
	return "", false
}

// quotesEcho reports whether data, the invoking packet quoted by an ICMP
// error, is our echo request with the given sequence number.
func quotesEcho(data []byte, v6 bool, seq int) bool {
	var inner []byte
	if v6 {
		if len(data) < 40 || data[6] != protocolIPv6ICMP {
			return false
		}
		inner = data[40:]
		if len(inner) < 8 || inner[0] != byte(ipv6.ICMPTypeEchoRequest) {
			return false
		}
	} else {
		if len(data) < 20 {
			return false
		}
		ihl := int(data[0]&0x0f) * 4
		if ihl < 20 || len(data) < ihl || data[9] != protocolICMP {
			return false
		}
		inner = data[ihl:]
		if len(inner) < 8 || inner[0] != byte(ipv4.ICMPTypeEcho) {
			return false
		}
	}
	return int(binary.BigEndian.Uint16(inner[6:8])) == seq
}
