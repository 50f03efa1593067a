package rpcclient

import (
	"errors"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/golang/mock/gomock"
)

func TestObservedClient(t *testing.T) {
	boom := errors.New("boom")
	hash := &chainhash.Hash{0x01}

	tests := []struct {
		name      string
		operation string
		setup     func(client *MockClient)
		call      func(c *ObservedClient) error
		wantErr   error
	}{
		{
			name:      "block count",
			operation: "get_block_count",
			setup: func(client *MockClient) {
				client.EXPECT().GetBlockCount().Return(int64(12), nil)
			},
			call: func(c *ObservedClient) error {
				count, err := c.GetBlockCount()
				if count != 12 {
					t.Fatalf("GetBlockCount() = %d, want 12", count)
				}
				return err
			},
		},
		{
			name:      "block hash error",
			operation: "get_block_hash",
			setup: func(client *MockClient) {
				client.EXPECT().GetBlockHash(int64(3)).Return(nil, boom)
			},
			call: func(c *ObservedClient) error {
				_, err := c.GetBlockHash(3)
				return err
			},
			wantErr: boom,
		},
		{
			name:      "block header",
			operation: "get_block_header_verbose",
			setup: func(client *MockClient) {
				client.EXPECT().GetBlockHeaderVerbose(hash).Return(&btcjson.GetBlockHeaderVerboseResult{Confirmations: 7}, nil)
			},
			call: func(c *ObservedClient) error {
				header, err := c.GetBlockHeaderVerbose(hash)
				if err == nil && header.Confirmations != 7 {
					t.Fatalf("GetBlockHeaderVerbose() confirmations = %d, want 7", header.Confirmations)
				}
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			client := NewMockClient(ctrl)
			rpcMetrics := NewMockRPCMetrics(ctrl)
			tt.setup(client)
			rpcMetrics.EXPECT().
				Observe(tt.operation, gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).
				Do(func(_ string, err error, _ time.Time) {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("unexpected error in metrics: %v", err)
					}
				})

			err := tt.call(NewObservedClient(client, rpcMetrics))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("call error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDial_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "scheme", url: "ftp://127.0.0.1:8332"},
		{name: "host", url: "http://"},
		{name: "unparsable", url: "http://[::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Dial(tt.url, "u", "p"); err == nil {
				t.Fatalf("Dial(%q) expected error", tt.url)
			}
		})
	}
}
