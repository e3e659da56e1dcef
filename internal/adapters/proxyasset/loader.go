// Package proxyasset implements usecase.ProxyAssetLoader by embedding
// the fixed proxy contract source at build time, matching the
// originating engine's load_proxy_encoded: the asset is already
// base64-encoded on disk and is returned as-is.
package proxyasset

import (
	"bytes"
	"context"
	_ "embed"
)

//go:embed asset/simba_proxy.sol.b64
var encoded []byte

// Loader serves the embedded, pre-encoded SIMBAProxy source.
type Loader struct{}

// NewLoader builds a Loader. There is nothing to configure: the asset
// is compiled into the binary.
func NewLoader() *Loader { return &Loader{} }

// Load returns the base64-encoded proxy contract source. It never
// fails; the error return exists to satisfy usecase.ProxyAssetLoader.
func (l *Loader) Load(_ context.Context) (string, error) {
	return string(bytes.TrimRight(encoded, "\n")), nil
}
