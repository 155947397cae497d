// Package discovery advertises the hub over mDNS and finds PC agents on the
// LAN so the settings page can offer them instead of a typed IP.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

// Service types.
const (
	HubService   = "_http._tcp"
	AgentService = "_seezee._tcp"
	Domain       = "local."
)

// DefaultBrowseTimeout bounds a Browse when the caller gives no timeout.
const DefaultBrowseTimeout = 3 * time.Second

// Advertiser manages the hub's mDNS registration.
type Advertiser struct {
	name    string // instance name, e.g. "launcherhub"
	port    int
	version string
	server  *zeroconf.Server
}

// NewAdvertiser creates an Advertiser for the given instance name and port.
func NewAdvertiser(name string, port int, version string) *Advertiser {
	return &Advertiser{name: name, port: port, version: version}
}

// Start registers the service and blocks until ctx is cancelled, at which
// point it shuts down the server cleanly.
func (a *Advertiser) Start(ctx context.Context) error {
	txt := []string{"version=" + a.version, "model=SeeZee Launcher Hub", "path=/api/hub"}

	server, err := zeroconf.Register(a.name, HubService, Domain, a.port, txt, nil)
	if err != nil {
		return fmt.Errorf("zeroconf register: %w", err)
	}
	a.server = server
	slog.Info("discovery: registered mDNS service", "name", a.name, "port", a.port, "txt", txt)

	<-ctx.Done()

	server.Shutdown()
	slog.Info("discovery: mDNS service unregistered")
	return nil
}

// Agent is a PC agent found on the LAN.
type Agent struct {
	Instance string            `json:"instance"`
	Host     string            `json:"host"`
	Address  string            `json:"address"`
	Port     int               `json:"port"`
	Text     map[string]string `json:"txt,omitempty"`
}

// Browse listens for agents until timeout elapses or ctx is cancelled and
// returns them sorted by instance name.
func Browse(ctx context.Context, timeout time.Duration) ([]Agent, error) {
	if timeout <= 0 {
		timeout = DefaultBrowseTimeout
	}
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("zeroconf resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, 16)
	done := make(chan []Agent, 1)
	go func() {
		seen := map[string]Agent{}
		defer func() { done <- sortAgents(seen) }()
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if agent, ok := FromEntry(entry); ok {
					seen[agent.Instance] = agent
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, AgentService, Domain, entries); err != nil {
		return nil, fmt.Errorf("zeroconf browse: %w", err)
	}
	<-ctx.Done()
	return <-done, nil
}

// FromEntry converts a resolved entry, preferring an IPv4 address. Entries
// without an address are skipped.
func FromEntry(entry *zeroconf.ServiceEntry) (Agent, bool) {
	if entry == nil {
		return Agent{}, false
	}
	var addr net.IP
	switch {
	case len(entry.AddrIPv4) > 0:
		addr = entry.AddrIPv4[0]
	case len(entry.AddrIPv6) > 0:
		addr = entry.AddrIPv6[0]
	default:
		return Agent{}, false
	}

	agent := Agent{
		Instance: entry.Instance,
		Host:     strings.TrimSuffix(entry.HostName, "."),
		Address:  addr.String(),
		Port:     entry.Port,
	}
	for _, kv := range entry.Text {
		k, v, _ := strings.Cut(kv, "=")
		if k == "" {
			continue
		}
		if agent.Text == nil {
			agent.Text = map[string]string{}
		}
		agent.Text[k] = v
	}
	return agent, true
}

func sortAgents(m map[string]Agent) []Agent {
	out := make([]Agent, 0, len(m))
	for _, a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instance < out[j].Instance })
	return out
}
