package printer

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("", "", "")
	require.NoError(t, err)
	assert.Equal(t, TypeNone, p.Status(context.Background()).Type)

	_, err = NewPrinterFromConfig(TypeUSB, "", "")
	assert.Error(t, err)
	_, err = NewPrinterFromConfig(TypeNetwork, "", "")
	assert.Error(t, err)
	_, err = NewPrinterFromConfig("laser", "", "")
	assert.Error(t, err)
}

func TestSpoolPrinterWritesJob(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	p, err := NewPrinterFromConfig(TypeSpool, "", dir)
	require.NoError(t, err)

	require.NoError(t, p.Print(context.Background(), Job{Name: "nota_CR00001.pdf", Data: []byte("%PDF-1.3")}))

	data, err := os.ReadFile(filepath.Join(dir, "nota_CR00001.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
	assert.True(t, p.Status(context.Background()).Connected)
}

func TestNetworkPrinterSendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), Job{Name: "nota.pdf", Data: []byte("hello")}))
	assert.Equal(t, "hello", string(<-received))
}

func TestUSBPrinterMissingDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "lp0"))
	assert.False(t, p.Status(context.Background()).Connected)
	assert.Error(t, p.Print(context.Background(), Job{Name: "x", Data: []byte("x")}))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewSpoolPrinter(t.TempDir())
	assert.ErrorIs(t, p.Print(ctx, Job{Name: "a.pdf"}), context.Canceled)
}
