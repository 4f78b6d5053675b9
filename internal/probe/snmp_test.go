package probe

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
)

// fakeAgent answers every GET with sysName (or stays silent when name is empty).
func fakeAgent(t *testing.T, name string) (uint16, func()) {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}

	go func() {
		buf := make([]byte, 65535)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			if name == "" {
				continue
			}
			req, err := gosnmp.Default.SnmpDecodePacket(buf[:n])
			if err != nil {
				continue
			}
			req.PDUType = gosnmp.GetResponse
			req.Variables = []gosnmp.SnmpPDU{{
				Name:  OIDSysName,
				Type:  gosnmp.OctetString,
				Value: []byte(name),
			}}
			out, err := req.MarshalMsg()
			if err != nil {
				continue
			}
			_, _ = conn.WriteTo(out, addr)
		}
	}()

	port := uint16(conn.LocalAddr().(*net.UDPAddr).Port)
	return port, func() { _ = conn.Close() }
}

func testSNMPProbe(port uint16) *SNMPProbe {
	p := NewSNMPProbe(nil)
	p.Port = port
	p.Timeout = 200 * time.Millisecond
	p.Retries = 0
	return p
}

func TestSNMPProbe_QueryName(t *testing.T) {
	port, stop := fakeAgent(t, "HP LaserJet 4250 Office")
	defer stop()

	name, err := testSNMPProbe(port).QueryName(context.Background(), "127.0.0.1")
	if err != nil {
		t.Fatalf("QueryName() error = %v", err)
	}
	if name != "HP LaserJet 4250 Office" {
		t.Errorf("QueryName() = %q", name)
	}
}

func TestSNMPProbe_Timeout(t *testing.T) {
	port, stop := fakeAgent(t, "")
	defer stop()

	start := time.Now()
	_, err := testSNMPProbe(port).QueryName(context.Background(), "127.0.0.1")
	if err == nil {
		t.Fatal("expected error from silent agent")
	}
	if !errors.Is(err, ErrSNMPTimeout) {
		t.Errorf("expected ErrSNMPTimeout, got %v", err)
	}

	var snmpErr *SNMPError
	if !errors.As(err, &snmpErr) || snmpErr.IP != "127.0.0.1" {
		t.Errorf("expected *SNMPError for 127.0.0.1, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("QueryName took %v, expected to give up quickly", elapsed)
	}
}

func TestDecodeSysName(t *testing.T) {
	tests := []struct {
		name    string
		packet  *gosnmp.SnmpPacket
		want    string
		wantErr error
	}{
		{
			name: "octet string bytes",
			packet: &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
				{Name: OIDSysName, Type: gosnmp.OctetString, Value: []byte("printer-01")},
			}},
			want: "printer-01",
		},
		{
			name: "octet string as string",
			packet: &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
				{Name: OIDSysName, Type: gosnmp.OctetString, Value: "printer-02"},
			}},
			want: "printer-02",
		},
		{
			name: "no such object",
			packet: &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
				{Name: OIDSysName, Type: gosnmp.NoSuchObject},
			}},
			wantErr: ErrSNMPNoSuchObject,
		},
		{
			name:    "error status",
			packet:  &gosnmp.SnmpPacket{Error: gosnmp.GenErr},
			wantErr: ErrSNMPMalformed,
		},
		{
			name:    "no variables",
			packet:  &gosnmp.SnmpPacket{},
			wantErr: ErrSNMPMalformed,
		},
		{
			name: "wrong type",
			packet: &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
				{Name: OIDSysName, Type: gosnmp.Integer, Value: 5},
			}},
			wantErr: ErrSNMPMalformed,
		},
		{
			name:    "nil packet",
			packet:  nil,
			wantErr: ErrSNMPMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSysName("10.0.0.5", tt.packet)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("decodeSysName() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeSysName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("decodeSysName() = %q, want %q", got, tt.want)
			}
		})
	}
}
