package mailprobe

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wgalyen/kimchi/internal/domain"
)

type fakeResolver struct {
	mxs []*net.MX
	err error
}

func (f *fakeResolver) LookupMX(ctx context.Context, domainName string) ([]*net.MX, error) {
	return f.mxs, f.err
}

type fakeDialer struct {
	accepted bool
	refused  bool
	err      error
}

func (f *fakeDialer) probe(ctx context.Context, host, local, domainName string, timeout time.Duration) (bool, bool, error) {
	return f.accepted, f.refused, f.err
}

func TestProbe_InvalidSyntax(t *testing.T) {
	p := &Prober{resolver: &fakeResolver{}, dialer: &fakeDialer{}}
	resp, err := p.Probe(context.Background(), "", "example.com", 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, resp.Status)
}

func TestProbe_NoMXRecords(t *testing.T) {
	p := &Prober{resolver: &fakeResolver{err: errors.New("no mx")}, dialer: &fakeDialer{}}
	resp, err := p.Probe(context.Background(), "person", "example.com", 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOk, resp.Status)
	assert.Equal(t, 0, resp.Code)
}

func TestProbe_Accepted(t *testing.T) {
	p := &Prober{
		resolver: &fakeResolver{mxs: []*net.MX{{Host: "mx.example.com", Pref: 10}}},
		dialer:   &fakeDialer{accepted: true},
	}
	resp, err := p.Probe(context.Background(), "person", "example.com", 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOk, resp.Status)
	assert.Equal(t, 250, resp.Code)
}

func TestProbe_DefinitiveRefusal(t *testing.T) {
	p := &Prober{
		resolver: &fakeResolver{mxs: []*net.MX{{Host: "mx.example.com", Pref: 10}}},
		dialer:   &fakeDialer{refused: true},
	}
	resp, err := p.Probe(context.Background(), "nobody", "example.com", 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, resp.Status)
	assert.Equal(t, "mail", resp.Reason)
}

func TestProbe_AmbiguousDialerError(t *testing.T) {
	p := &Prober{
		resolver: &fakeResolver{mxs: []*net.MX{{Host: "mx.example.com", Pref: 10}}},
		dialer:   &fakeDialer{err: errors.New("timeout")},
	}
	resp, err := p.Probe(context.Background(), "person", "example.com", 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOk, resp.Status)
}

func TestIsPermanentSMTPError(t *testing.T) {
	assert.True(t, isPermanentSMTPError(errors.New("550 no such user")))
	assert.False(t, isPermanentSMTPError(errors.New("450 try again later")))
	assert.False(t, isPermanentSMTPError(nil))
}
